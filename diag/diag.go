/*
File    : yapl/diag/diag.go
Project : YAPL compiler front-end
*/

// Package diag implements the diagnostics sink of the YAPL front-end.
//
// Every stage reports structured diagnostics into a Bag instead of failing;
// a compilation therefore surfaces as many findings as possible in one run.
// Only error-severity diagnostics influence the process exit code.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/emilienlemaire/yapl/lexer"
)

// Severity classifies a diagnostic.
type Severity int

// Severity constants are prefixed to avoid colliding with the Error kind
// type declared in errors.go.
const (
	SeverityInfo Severity = iota
	SeverityWarn
	SeverityError
)

// String returns the lowercase severity label.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	default:
		return "error"
	}
}

// Diagnostic is a single report: where, how bad, and what.
type Diagnostic struct {
	Severity Severity
	Kind     Error // error taxonomy tag (may be empty for info)
	Pos      lexer.Position
	Message  string
}

// String renders the diagnostic in "severity pos: message" form.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s", d.Severity, d.Pos, d.Message)
}

// Bag collects the diagnostics of one compilation in report order.
type Bag struct {
	Diagnostics []Diagnostic
	errors      int
}

// NewBag creates an empty diagnostics bag.
func NewBag() *Bag {
	return &Bag{}
}

// Report appends a fully-formed diagnostic.
func (b *Bag) Report(d Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
	if d.Severity == SeverityError {
		b.errors++
	}
}

// Errorf reports an error-severity diagnostic tagged with the given kind.
func (b *Bag) Errorf(kind Error, pos lexer.Position, format string, args ...interface{}) {
	b.Report(Diagnostic{
		Severity: SeverityError,
		Kind:     kind,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf reports a warning.
func (b *Bag) Warnf(pos lexer.Position, format string, args ...interface{}) {
	b.Report(Diagnostic{Severity: SeverityWarn, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// Infof reports an informational diagnostic.
func (b *Bag) Infof(pos lexer.Position, format string, args ...interface{}) {
	b.Report(Diagnostic{Severity: SeverityInfo, Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether at least one error-severity diagnostic was
// collected.
func (b *Bag) HasErrors() bool {
	return b.errors > 0
}

// ErrorCount returns the number of error-severity diagnostics.
func (b *Bag) ErrorCount() int {
	return b.errors
}

// ByKind returns the diagnostics tagged with the given kind.
func (b *Bag) ByKind(kind Error) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Color definitions for console output, one per severity.
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// ConsolePrinter renders diagnostics to a terminal, one line each, colored
// by severity: red errors, yellow warnings, cyan info.
type ConsolePrinter struct {
	Out  io.Writer
	File string // source name prefixed to every line (may be empty)
}

// Print writes a single diagnostic.
func (p *ConsolePrinter) Print(d Diagnostic) {
	prefix := ""
	if p.File != "" {
		prefix = p.File + ":"
	}
	line := fmt.Sprintf("%s%s: %s: %s\n", prefix, d.Pos, d.Severity, d.Message)
	switch d.Severity {
	case SeverityError:
		redColor.Fprint(p.Out, line)
	case SeverityWarn:
		yellowColor.Fprint(p.Out, line)
	default:
		cyanColor.Fprint(p.Out, line)
	}
}

// PrintAll writes every diagnostic in the bag in report order.
func (p *ConsolePrinter) PrintAll(b *Bag) {
	for _, d := range b.Diagnostics {
		p.Print(d)
	}
}
