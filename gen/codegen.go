package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/grammar"
)

// GenCode is the graph code emitter (spec.md §4.6, C6) — the heart of
// the generator. It walks the sequence starting at p along Next,
// halting after emitting a node whose Up is set, translating each node
// into recursive-descent code. isChecked is the set of terminals
// already verified by the surrounding context, letting a single-
// terminal alternative elide a redundant Expect.
//
// Node-kind dispatch is an exhaustive Go switch, not a chain of
// independent ifs — see spec.md §9's first Open Question and
// DESIGN.md: the original's non-exclusive chain of ifs let later tests
// still run against a node an earlier branch (e.g. eps) had already
// matched, which the spec calls out as surprising and unintentional.
func (g *Generator) GenCode(p *grammar.Node, indent int, isChecked *grammar.TerminalSet) {
	for p != nil {
		switch p.Kind {
		case grammar.KindNT:
			g.Indent(indent)
			fmt.Fprintf(g.gen, "%s_NT(", p.Sym.Name)
			g.CopySourcePart(p.Pos, 0)
			io.WriteString(g.gen, ");\n")

		case grammar.KindT:
			g.Indent(indent)
			if isChecked.Get(p.Sym.N) {
				io.WriteString(g.gen, "Get();\n")
			} else {
				io.WriteString(g.gen, "Expect(")
				WriteSymbolOrCode(g.gen, p.Sym)
				io.WriteString(g.gen, ");\n")
			}
			io.WriteString(g.gen, "#ifdef PARSER_WITH_AST\n\tAstAddTerminal();\n#endif\n")

		case grammar.KindWT:
			g.Indent(indent)
			s1 := g.queries.Expected(p.Next, g.curSy)
			s1.Or(g.tab.AllSyncSets)
			io.WriteString(g.gen, "ExpectWeak(")
			WriteSymbolOrCode(g.gen, p.Sym)
			fmt.Fprintf(g.gen, ", %d);\n", g.NewCondSet(s1))

		case grammar.KindAny:
			g.Indent(indent)
			acc := p.Set.Elements()
			if len(g.tab.Terminals) == acc+1 || (acc > 0 && p.Set.Equals(isChecked)) {
				io.WriteString(g.gen, "Get();\n")
			} else {
				g.GenErrorMsg(altErr, g.curSy)
				if acc > 0 {
					io.WriteString(g.gen, "if (")
					g.GenCond(p.Set, p)
					fmt.Fprintf(g.gen, ") Get(); else SynErr(%d);\n", g.errorNr)
				} else {
					fmt.Fprintf(g.gen, "SynErr(%d); // ANY node that matches no symbol\n", g.errorNr)
				}
			}

		case grammar.KindEps:
			// nothing

		case grammar.KindRslv:
			// nothing — consumed by the enclosing condition

		case grammar.KindSem:
			g.CopySourcePart(p.Pos, indent)

		case grammar.KindSync:
			g.Indent(indent)
			g.GenErrorMsg(syncErr, g.curSy)
			s1 := p.Set.Clone()
			io.WriteString(g.gen, "while (!(")
			g.GenCond(s1, p)
			io.WriteString(g.gen, ")) {")
			fmt.Fprintf(g.gen, "SynErr(%d); Get();", g.errorNr)
			io.WriteString(g.gen, "}\n")

		case grammar.KindAlt:
			g.genAlt(p, indent, isChecked)

		case grammar.KindIter:
			g.genIter(p, indent)

		case grammar.KindOpt:
			s1 := g.queries.First(p.Sub)
			g.Indent(indent)
			io.WriteString(g.gen, "if (")
			g.GenCond(s1, p.Sub)
			io.WriteString(g.gen, ") {\n")
			g.GenCode(p.Sub, indent+1, s1)
			g.Indent(indent)
			io.WriteString(g.gen, "}\n")
		}

		if p.Kind != grammar.KindEps && p.Kind != grammar.KindSem && p.Kind != grammar.KindSync {
			isChecked.SetAll(false)
		}
		if p.Up {
			break
		}
		p = p.Next
	}
}

func (g *Generator) genAlt(p *grammar.Node, indent int, isChecked *grammar.TerminalSet) {
	s1 := g.queries.First(p)
	equal := s1.Equals(isChecked)
	useSwitch := g.UseSwitch(p)

	if useSwitch {
		g.Indent(indent)
		io.WriteString(g.gen, "switch (la->kind) {\n")
	}

	for p2 := p; p2 != nil; p2 = p2.Down {
		s2 := g.queries.Expected(p2.Sub, g.curSy)
		g.Indent(indent)
		switch {
		case useSwitch:
			g.putCaseLabels(s2)
			io.WriteString(g.gen, "{\n")
		case p2 == p:
			io.WriteString(g.gen, "if (")
			g.GenCond(s2, p2.Sub)
			io.WriteString(g.gen, ") {\n")
		case p2.Down == nil && equal:
			io.WriteString(g.gen, "} else {\n")
		default:
			io.WriteString(g.gen, "} else if (")
			g.GenCond(s2, p2.Sub)
			io.WriteString(g.gen, ") {\n")
		}
		g.GenCode(p2.Sub, indent+1, s2)
		if useSwitch {
			g.Indent(indent)
			io.WriteString(g.gen, "\tbreak;\n")
			g.Indent(indent)
			io.WriteString(g.gen, "}\n")
		}
	}

	g.Indent(indent)
	if equal {
		io.WriteString(g.gen, "}\n")
	} else {
		g.GenErrorMsg(altErr, g.curSy)
		if useSwitch {
			fmt.Fprintf(g.gen, "default: SynErr(%d); break;\n", g.errorNr)
			g.Indent(indent)
			io.WriteString(g.gen, "}\n")
		} else {
			fmt.Fprintf(g.gen, "} else SynErr(%d);\n", g.errorNr)
		}
	}
}

// putCaseLabels emits one "case <sym>: " label per terminal in the
// derivation closure of s0, so a parent terminal's case also covers
// every inherited subtype terminal at runtime (spec.md §4.2/§4.6).
func (g *Generator) putCaseLabels(s0 *grammar.TerminalSet) {
	s := g.DerivationsOf(s0)
	for _, sym := range g.tab.Terminals {
		if s.Get(sym.N) {
			io.WriteString(g.gen, "case ")
			WriteSymbolOrCode(g.gen, sym)
			io.WriteString(g.gen, ": ")
		}
	}
}

func (g *Generator) genIter(p *grammar.Node, indent int) {
	g.Indent(indent)
	p2 := p.Sub
	io.WriteString(g.gen, "while (")

	var s1 *grammar.TerminalSet
	if p2.Kind == grammar.KindWT {
		sFirst := g.queries.Expected(p2.Next, g.curSy)
		sFollow := g.queries.Expected(p.Next, g.curSy)
		io.WriteString(g.gen, "WeakSeparator(")
		WriteSymbolOrCode(g.gen, p2.Sym)
		fmt.Fprintf(g.gen, ",%d,%d) ", g.NewCondSet(sFirst), g.NewCondSet(sFollow))
		s1 = grammar.NewTerminalSet(len(g.tab.Terminals))
		if p2.Up || p2.Next == nil {
			p2 = nil
		} else {
			p2 = p2.Next
		}
	} else {
		s1 = g.queries.First(p2)
		g.GenCond(s1, p2)
	}

	io.WriteString(g.gen, ") {\n")
	g.GenCode(p2, indent+1, s1)
	g.Indent(indent)
	io.WriteString(g.gen, "}\n")
}
