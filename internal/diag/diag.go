// Package diag defines the diagnostics records produced by the MiniC front
// end and the sinks that collect or render them.
package diag

import (
	"fmt"
	"sync"

	"github.com/you-not-fish/minic/internal/syntax"
)

// Severity is the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "unknown"
	}
}

// Kind classifies what went wrong.
type Kind int

const (
	Syntax Kind = iota
	Redeclaration
	UnresolvedName
	UnresolvedType
	TypeMismatch
	StructuralType
	MissingReturn
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax error"
	case Redeclaration:
		return "redeclaration"
	case UnresolvedName:
		return "unresolved name"
	case UnresolvedType:
		return "unresolved type"
	case TypeMismatch:
		return "type mismatch"
	case StructuralType:
		return "structural type error"
	case MissingReturn:
		return "missing return"
	default:
		return "unknown"
	}
}

// Diagnostic is a single located message.
type Diagnostic struct {
	Severity Severity
	Kind     Kind // meaningful for Severity == Error
	Pos      syntax.Pos
	Msg      string
}

// Error formats d as file:line:col: kind: msg. Notes and warnings use
// their severity in place of the kind.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.label(), d.Msg)
}

func (d *Diagnostic) label() string {
	if d.Severity == Error {
		return d.Kind.String()
	}
	return d.Severity.String()
}

// Errorf returns an error diagnostic of the given kind.
func Errorf(kind Kind, pos syntax.Pos, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Severity: Error, Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Notef returns a note attached to a preceding error.
func Notef(pos syntax.Pos, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Severity: Note, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// FromSyntax converts a parser error into a diagnostic.
func FromSyntax(err *syntax.SyntaxError) *Diagnostic {
	return &Diagnostic{Severity: Error, Kind: Syntax, Pos: err.Pos, Msg: err.Msg}
}

// Sink receives diagnostics as they are produced.
type Sink interface {
	Report(d *Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d *Diagnostic)

func (f SinkFunc) Report(d *Diagnostic) { f(d) }

// Discard is a Sink that drops everything.
var Discard Sink = SinkFunc(func(*Diagnostic) {})

// Tee returns a Sink that reports to every non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d *Diagnostic) {
		for _, s := range sinks {
			if s != nil {
				s.Report(d)
			}
		}
	})
}

// List is a Sink that keeps every record. It is safe for concurrent use.
type List struct {
	mu    sync.Mutex
	items []*Diagnostic
}

func (l *List) Report(d *Diagnostic) {
	l.mu.Lock()
	l.items = append(l.items, d)
	l.mu.Unlock()
}

// Items returns a copy of the collected diagnostics in report order.
func (l *List) Items() []*Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Diagnostic(nil), l.items...)
}

func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Err returns the first error-severity diagnostic, or nil.
func (l *List) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, d := range l.items {
		if d.Severity == Error {
			return d
		}
	}
	return nil
}
