// Package diag is the diagnostics sink that the check command and the
// LSP server collect grammar problems into (spec.md §7). Packages gen
// and grammar do not report here: grammar.Parse returns an error, and
// the LSP server turns a panic during set preparation into a Fatal
// diagnostic.
package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/cocogen/grammar"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported problem, optionally anchored to a source
// position.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      *grammar.Position
}

func (d Diagnostic) String() string {
	if d.Pos == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Sink accepts diagnostics as they're discovered. Report is called
// synchronously by whoever found the problem, so implementations must
// not block for long.
type Sink interface {
	Report(d Diagnostic)
}

// List is an in-memory Sink, the default collector used by the CLI and
// the LSP server.
type List struct {
	items []Diagnostic
}

// NewList returns an empty List.
func NewList() *List { return &List{} }

func (l *List) Report(d Diagnostic) { l.items = append(l.items, d) }

// Items returns the diagnostics reported so far, ordered by position
// (diagnostics with no position sort last, in report order).
func (l *List) Items() []Diagnostic {
	out := make([]Diagnostic, len(l.items))
	copy(out, l.items)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Pos, out[j].Pos
		if pi == nil || pj == nil {
			return pi != nil && pj == nil
		}
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Col < pj.Col
	})
	return out
}

// HasErrors reports whether any Error or Fatal diagnostic was
// collected.
func (l *List) HasErrors() bool {
	for _, d := range l.items {
		if d.Severity >= Error {
			return true
		}
	}
	return false
}

// Printer writes diagnostics to w in the "pos: severity: message" form
// every Diagnostic.String() already renders.
type Printer struct {
	W io.Writer
}

func NewPrinter(w io.Writer) *Printer { return &Printer{W: w} }

func (p *Printer) Report(d Diagnostic) {
	fmt.Fprintln(p.W, d.String())
}

// PrintAll writes every diagnostic in l, in position order.
func (p *Printer) PrintAll(l *List) {
	for _, d := range l.Items() {
		fmt.Fprintln(p.W, d.String())
	}
}
