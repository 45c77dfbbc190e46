/*
File    : yapl/main.go
Project : YAPL compiler front-end
*/

// Package main implements the yapl command-line driver.
//
// The driver runs the front-end pipeline over one source file (or standard
// input when no file is given), prints every collected diagnostic, and
// exits non-zero when any error-severity diagnostic surfaced. With
// --print-ast the typed AST is dumped as an indented tree; with --repl an
// interactive session starts instead.
package main

import (
	"fmt"
	"os"

	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"

	"github.com/emilienlemaire/yapl/compile"
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/repl"
)

var version = semver.Version{
	Major: 0,
	Minor: 1,
	Patch: 0,
}

var (
	argPrintAST bool
	argRepl     bool
)

var rootCmd = &cobra.Command{
	Use:           "yapl [source-file]",
	Short:         "YAPL compiler front-end",
	Long:          "Runs the YAPL front-end pipeline (lexer, parser, semantic analyzer, method extractor)\nover a source file and reports diagnostics. Reads standard input when no file is given.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if argRepl {
			banner := "YAPL " + version.Short()
			r := repl.NewRepl(banner, version.Short(), "----------------------------------------", "yapl >>> ")
			return r.Start(os.Stdout)
		}

		var (
			result *compile.Result
			name   string
			err    error
		)
		if len(args) == 1 {
			name = args[0]
			result, err = compile.File(name)
		} else {
			name = "<stdin>"
			result, err = compile.Reader(os.Stdin, name)
		}
		if err != nil {
			return err
		}

		printer := diag.ConsolePrinter{Out: os.Stderr, File: name}
		printer.PrintAll(result.Diags)

		if argPrintAST {
			fmt.Print(result.DumpAST())
		}

		if !result.Ok() {
			return fmt.Errorf("%d error(s)", result.Diags.ErrorCount())
		}
		return nil
	},
}

func main() {
	rootCmd.Version = version.Short()
	rootCmd.Flags().BoolVar(&argPrintAST, "print-ast", false, "dump the typed AST after analysis")
	rootCmd.Flags().BoolVarP(&argRepl, "repl", "i", false, "start an interactive session")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
