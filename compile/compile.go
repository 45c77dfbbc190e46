/*
File    : yapl/compile/compile.go
Project : YAPL compiler front-end
*/

// Package compile assembles the front-end pipeline:
//
//	source text -> lexer -> parser -> semantic analyzer -> method extractor
//
// The result is a typed, validated program AST plus the expression type map,
// ready for a lowering consumer. Each run builds its own type store and
// scope tree, so concurrent compilations never share state.
package compile

import (
	"io"
	"os"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/sema"
	"github.com/emilienlemaire/yapl/transform"
	"github.com/emilienlemaire/yapl/types"
)

// Result is the output of one front-end run.
type Result struct {
	Program  *parser.ProgramNode
	Analyzer *sema.Analyzer // expression-to-type annotations
	Types    *types.Store
	Diags    *diag.Bag
}

// Ok reports whether the run surfaced no error diagnostics.
func (r *Result) Ok() bool {
	return !r.Diags.HasErrors()
}

// DumpAST renders the typed AST as an indented tree.
func (r *Result) DumpAST() string {
	printer := &parser.PrintingVisitor{}
	r.Program.Accept(printer)
	return printer.String()
}

// Source runs the full pipeline over source text. The name is used in
// diagnostics only.
func Source(src, name string) *Result {
	store := types.NewStore()
	diags := diag.NewBag()

	par := parser.NewParser(src, name, store, diags)
	program := par.Parse()

	analyzer := sema.NewAnalyzer(program, store, diags)
	analyzer.Analyze()

	extractor := transform.NewMethodExtractor(program, store, diags)
	extractor.Extract()

	return &Result{
		Program:  program,
		Analyzer: analyzer,
		Types:    store,
		Diags:    diags,
	}
}

// File compiles the given source file.
func File(path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Source(string(src), path), nil
}

// Reader compiles everything readable from r, typically standard input.
func Reader(r io.Reader, name string) (*Result, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Source(string(src), name), nil
}
