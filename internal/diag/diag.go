// Package diag defines the single Diagnostic type shared by the lexer,
// parser, and checker, replacing the teacher's three separate
// ParseError/SemanticError-shaped structs with one, per spec.md §7's
// taxonomy of lex/parse/type errors sharing "a source line/column and a
// short message".
package diag

import (
	"fmt"

	"github.com/fern-lang/fern/internal/token"
)

// Stage identifies which pipeline stage raised a Diagnostic.
type Stage int

const (
	Lex Stage = iota
	Parse
	Check
)

func (s Stage) String() string {
	switch s {
	case Lex:
		return "lex"
	case Parse:
		return "parse"
	case Check:
		return "type"
	default:
		return "error"
	}
}

// Severity distinguishes hard errors from advisory warnings — spec.md
// §4.3 allows non-exhaustive match to be a warning rather than a hard
// error.
type Severity int

const (
	Error Severity = iota
	Warning
)

// Diagnostic is one lex/parse/type error or warning, carrying enough
// information for the driver to print `filename:line:col: message`.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Pos      token.Position
	Msg      string
}

// New builds an Error-severity Diagnostic.
func New(stage Stage, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Stage: stage, Severity: Error, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Warningf builds a Warning-severity Diagnostic.
func Warningf(stage Stage, pos token.Position, format string, args ...any) Diagnostic {
	return Diagnostic{Stage: stage, Severity: Warning, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// String renders "<stage> error at line:col: msg", matching the teacher's
// ParseError/SemanticError String() format.
func (d Diagnostic) String() string {
	kind := "error"
	if d.Severity == Warning {
		kind = "warning"
	}
	return fmt.Sprintf("%s %s at %s: %s", d.Stage, kind, d.Pos, d.Msg)
}

// Error implements the error interface so a Diagnostic can be returned or
// wrapped like any other Go error.
func (d Diagnostic) Error() string { return d.String() }

// List is a collection of diagnostics with convenience queries mirroring
// spec.md §6's has_errors/first_error.
type List []Diagnostic

// HasErrors reports whether any Error-severity diagnostic is present.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// First returns the first Error-severity diagnostic, if any.
func (l List) First() (Diagnostic, bool) {
	for _, d := range l {
		if d.Severity == Error {
			return d, true
		}
	}
	return Diagnostic{}, false
}
