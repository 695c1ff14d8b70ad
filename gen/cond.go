package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/grammar"
)

// GenCond renders a decision predicate over the current lookahead
// (spec.md §4.5). A resolver node's predicate is copied verbatim with
// no parentheses added. Otherwise: an empty set emits "false" (an ANY
// node that matches no symbol); a set no larger than MaxTerm emits an
// inline disjunction over IsKind(la, ...) in terminal-id order; a
// larger set interns itself in the condition-set table and emits a
// StartOf(i) lookup instead.
func (g *Generator) GenCond(s *grammar.TerminalSet, p *grammar.Node) {
	if p.Kind == grammar.KindRslv {
		g.CopySourcePart(p.Pos, 0)
		return
	}

	n := s.Elements()
	if n == 0 {
		io.WriteString(g.gen, "false")
		return
	}
	if n <= g.opts.MaxTerm {
		for _, sym := range g.tab.Terminals {
			if !s.Get(sym.N) {
				continue
			}
			io.WriteString(g.gen, "IsKind(la, ")
			WriteSymbolOrCode(g.gen, sym)
			io.WriteString(g.gen, ")")
			n--
			if n > 0 {
				io.WriteString(g.gen, " || ")
			}
		}
		return
	}
	fmt.Fprintf(g.gen, "StartOf(%d /* %s */)", g.NewCondSet(s), p.Kind)
}
