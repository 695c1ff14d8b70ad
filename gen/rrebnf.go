package gen

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/cocogen/grammar"
)

// GenCodeRREBNF renders the graph starting at p as a diagram-friendly
// right-recursive EBNF fragment using |, ( … ), *, ? (spec.md §4.9). It
// returns the number of terminal/nonterminal tokens emitted so the
// caller can substitute a placeholder ("()") when a right-hand side
// contributes nothing printable.
func (g *Generator) GenCodeRREBNF(w io.Writer, p *grammar.Node, depth int) int {
	tokenCount := 0
	loopCount := 0
	for p != nil {
		switch p.Kind {
		case grammar.KindNT:
			io.WriteString(w, p.Sym.Name)
			tokenCount++

		case grammar.KindT, grammar.KindWT:
			if p.Kind == grammar.KindT {
				fmt.Fprintf(w, "%q", literalName(p.Sym))
				tokenCount++
			}

		case grammar.KindAny:
			io.WriteString(w, "ANY")

		case grammar.KindAlt:
			needParens := depth > 0 || loopCount > 0 || p.Next != nil
			if needParens {
				io.WriteString(w, "(")
			}
			for p2 := p; p2 != nil; p2 = p2.Down {
				if p2 != p {
					io.WriteString(w, " | ")
				}
				tokenCount += g.GenCodeRREBNF(w, p2.Sub, depth+1)
			}
			if needParens {
				io.WriteString(w, ")")
			}

		case grammar.KindIter:
			io.WriteString(w, "(")
			tokenCount += g.GenCodeRREBNF(w, p.Sub, depth+1)
			io.WriteString(w, ")*")

		case grammar.KindOpt:
			io.WriteString(w, "(")
			tokenCount += g.GenCodeRREBNF(w, p.Sub, depth+1)
			io.WriteString(w, ")?")

		case grammar.KindEps, grammar.KindSem, grammar.KindSync, grammar.KindRslv:
			// contribute nothing
		}

		if p.Up {
			break
		}
		if p.Next != nil {
			io.WriteString(w, " ")
		}
		loopCount++
		p = p.Next
	}
	return tokenCount
}

func literalName(sym *grammar.Symbol) string {
	name := sym.Name
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		return name[1 : len(name)-1]
	}
	return name
}

// WriteRREBNF writes a full grammar dump: one "name = <rhs> ." entry per
// nonterminal in declaration order, with "name =", the tab-indented
// right-hand side and the tab-indented closing "." on lines of their
// own. A nonterminal whose body yields no
// tokens gets the placeholder "()" instead of an empty right-hand
// side.
func (g *Generator) WriteRREBNF(w io.Writer) {
	for _, sym := range g.tab.Nonterminals {
		fmt.Fprintf(w, "%s =\n\t", sym.Name)
		var sb strings.Builder
		n := g.GenCodeRREBNF(&sb, sym.Graph, 0)
		if n == 0 {
			io.WriteString(w, "()")
		} else {
			io.WriteString(w, sb.String())
		}
		io.WriteString(w, "\n\t.\n\n")
	}
}
