/*
File    : yapl/repl/repl.go
Project : YAPL compiler front-end

Package repl implements the interactive front-end loop. Each entered line
runs through the whole pipeline — lexer, parser, semantic analyzer, method
extractor. Its diagnostics are printed, and when none of them is an error
the resulting typed AST is dumped as an indented tree. The REPL is a
front-end inspector: nothing is evaluated.

The loop uses the readline library for line editing and history, and
colored output to separate diagnostics from AST dumps.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/emilienlemaire/yapl/compile"
	"github.com/emilienlemaire/yapl/diag"
)

// Color definitions for REPL output:
// - blueColor: decorative separators
// - yellowColor: version info
// - greenColor: banner
// - cyanColor: instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the configuration of one interactive session.
type Repl struct {
	Banner  string // banner displayed at startup
	Version string // version string of the compiler
	Line    string // separator line for visual formatting
	Prompt  string // prompt shown to the user
}

// NewRepl creates a REPL with the given banner configuration.
func NewRepl(banner, version, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version)
	cyanColor.Fprintf(writer, "%s\n", "Type a YAPL statement to see its typed AST")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the read-compile-print loop until '.exit' or end of input.
func (r *Repl) Start(writer io.Writer) error {
	r.PrintBannerInfo(writer)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.Prompt,
		HistoryFile:     "/tmp/yapl_repl_history",
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			cyanColor.Fprintln(writer, "Bye!")
			return nil
		}

		r.compileLine(writer, line)
	}
}

// compileLine runs one input line through the pipeline, prints the
// diagnostics and, when no error was reported, the typed AST.
func (r *Repl) compileLine(writer io.Writer, line string) {
	result := compile.Source(line, "<repl>")

	printer := diag.ConsolePrinter{Out: writer, File: "<repl>"}
	printer.PrintAll(result.Diags)

	if result.Ok() {
		fmt.Fprint(writer, result.DumpAST())
	}
}
