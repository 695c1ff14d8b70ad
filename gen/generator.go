// Package gen is the parser-emission core (spec.md §1-§9): the
// grammar-graph walker, the condition-set interning table, the
// decision-tree synthesizer for alternatives/iterations/options, the
// error-message table builder, and the frame-driven output composer.
//
// Everything in this package is single-threaded, synchronous, batch
// (spec.md §5): a Generator is owned exclusively by the goroutine
// calling WriteParser/WriteRREBNF for the duration of that call.
package gen

import (
	"io"
	"strings"

	"github.com/dhamidi/cocogen/grammar"
)

// Queries is the set of FIRST/FOLLOW/Expected/Expected0 lookups the
// core consults, kept behind an interface so gen never recomputes a
// closure itself — spec.md §1 treats set computation as an external
// collaborator (implemented in package sets, but gen.Generator only
// ever calls through this interface).
type Queries interface {
	First(p *grammar.Node) *grammar.TerminalSet
	Expected(p *grammar.Node, ctxSym *grammar.Symbol) *grammar.TerminalSet
	Expected0(p *grammar.Node, ctxSym *grammar.Symbol) *grammar.TerminalSet
}

// Error kinds observed by the core (spec.md §7).
const (
	tErr = iota
	altErr
	syncErr
)

// Options are the configuration knobs spec.md §9 lists as recognized
// by the core.
type Options struct {
	EmitLines          bool // inject #line directives into copied action text
	CheckEOF           bool // emit an EOF Expect after the start symbol
	ParserWithAst      bool // gate AST hook emission
	MaxTerm            int  // threshold above which condition sets use the StartOf table
	NamespaceSeparator byte // character splitting nested namespace names
}

// DefaultOptions returns the options Coco/R itself defaults to.
func DefaultOptions() Options {
	return Options{MaxTerm: 3, NamespaceSeparator: '.'}
}

// Generator holds the single-call emission state (spec.md §3
// "Emission State"): curSy, the output handle, the error accumulator,
// and the condition-set table. It is not safe for concurrent use and
// not meant to be reused across WriteParser calls with different
// tables.
type Generator struct {
	tab     *grammar.Table
	buf     *grammar.Buffer
	queries Queries
	opts    Options

	curSy *grammar.Symbol
	gen   io.Writer

	errorNr int
	err     strings.Builder

	// symSet is the condition-set table (C1). Entry 0 is reserved for
	// the union of all sync sets (spec.md §4.1); it is pre-seeded in
	// New, borrowed from tab.AllSyncSets, and must never be mutated in
	// place.
	symSet []*grammar.TerminalSet
}

// New builds a Generator over a fully-ingested, fully-set-computed
// table. buf is the buffered grammar source backing CopySourcePart
// (C3); it may be nil if the grammar has no embedded semantic actions
// or resolvers to copy.
func New(tab *grammar.Table, buf *grammar.Buffer, q Queries, opts Options) *Generator {
	if opts.MaxTerm == 0 {
		opts.MaxTerm = 3
	}
	g := &Generator{
		tab:     tab,
		buf:     buf,
		queries: q,
		opts:    opts,
		errorNr: -1,
	}
	g.symSet = append(g.symSet, tab.AllSyncSets)
	return g
}

// NodeCount reports the number of nodes allocated while building the
// table's graph — used by WriteStatistics.
func (g *Generator) NodeCount() int { return len(g.tab.Nodes) }

// CondSetCount reports the number of entries in the condition-set
// table (including the pre-seeded entry 0).
func (g *Generator) CondSetCount() int { return len(g.symSet) }
