package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/grammar"
)

// GenTokensHeader emits an enumeration entry "_<name> = <n>" for every
// terminal whose name begins with a letter (spec.md §4.8). Terminals
// declared only as quoted literals are referenced by numeric literal
// elsewhere (WriteSymbolOrCode) and get no enum entry here. Pragmas
// follow in the same enumeration, continuing the numbering.
func (g *Generator) GenTokensHeader() {
	for _, sym := range g.tab.Terminals {
		if len(sym.Name) > 0 && isLetter(sym.Name[0]) {
			fmt.Fprintf(g.gen, "\t_%s=%d,\n", sym.Name, sym.N)
		}
	}
	for _, sym := range g.tab.Pragmas {
		fmt.Fprintf(g.gen, "\t_%s=%d,\n", sym.Name, len(g.tab.Terminals)+sym.N)
	}
	if g.opts.ParserWithAst {
		for _, sym := range g.tab.Nonterminals {
			fmt.Fprintf(g.gen, "\t_%sNT=%d,\n", sym.Name, sym.N)
		}
	}
}

// GenTokenBase emits the static tBase table the runtime's subtype
// check reads: tBase[i] is terminals[i].Inherits.N, or -1 when the
// terminal has no parent (spec.md §4.8, invariant 6).
func (g *Generator) GenTokenBase() {
	io.WriteString(g.gen, "static int tBase[] = {\n")
	for _, sym := range g.tab.Terminals {
		base := -1
		if sym.Inherits != nil {
			base = sym.Inherits.N
		}
		fmt.Fprintf(g.gen, "\t%d,\n", base)
	}
	io.WriteString(g.gen, "};\n")
}

// GenCodePragmas emits, inside Get's scan loop, one "if (IsKind(la,
// sym)) { ... }" arm per pragma — copying the pragma's semantic action
// verbatim — so a pragma token is consumed without ever reaching the
// parser's lookahead.
func (g *Generator) GenCodePragmas() {
	for _, sym := range g.tab.Pragmas {
		io.WriteString(g.gen, "\t\tif (IsKind(la, ")
		WriteSymbolOrCode(g.gen, sym)
		io.WriteString(g.gen, ")) {\n")
		g.CopySourcePart(sym.SemPos, 3)
		io.WriteString(g.gen, "\t\t\tcontinue;\n\t\t}\n")
	}
}

// GenProductionsHeader emits one forward declaration per nonterminal,
// in declaration order.
func (g *Generator) GenProductionsHeader() {
	for _, sym := range g.tab.Nonterminals {
		fmt.Fprintf(g.gen, "\tvoid %s_NT(", sym.Name)
		g.CopySourcePart(sym.AttrPos, 0)
		io.WriteString(g.gen, ");\n")
	}
}

// GenProductions emits one production body per nonterminal: a
// semantic-declarations prologue, an AST push (the start symbol's form
// differs from every other production's), the production's graph
// walked by GenCode at an empty isChecked, and an AST pop (spec.md
// §4.8).
func (g *Generator) GenProductions() {
	empty := grammar.NewTerminalSet(len(g.tab.Terminals))
	for _, sym := range g.tab.Nonterminals {
		g.curSy = sym
		fmt.Fprintf(g.gen, "void Parser::%s_NT(", sym.Name)
		g.CopySourcePart(sym.AttrPos, 0)
		io.WriteString(g.gen, ") {\n")
		g.CopySourcePart(sym.SemPos, 1)

		if g.opts.ParserWithAst {
			if sym == g.tab.GramSy {
				io.WriteString(g.gen, "\tAstSetRoot();\n")
			} else {
				fmt.Fprintf(g.gen, "\tAstAddNonTerminal(_%sNT);\n", sym.Name)
			}
		}

		g.GenCode(sym.Graph, 1, empty.Clone())

		if g.opts.ParserWithAst {
			io.WriteString(g.gen, "\tAstPopNonTerminal();\n")
		}
		io.WriteString(g.gen, "}\n\n")
	}
}

// InitSets emits the StartOf matrix: one row per interned condition
// set, one column per terminal plus a trailing EOF column, each cell
// "T" (member, after closing under DerivationsOf) or "x" (spec.md
// §4.8, invariant 5: width is always |terminals|+1, trailing column
// always "x").
func (g *Generator) InitSets() {
	io.WriteString(g.gen, "static bool set[][")
	fmt.Fprintf(g.gen, "%d] = {\n", len(g.tab.Terminals)+1)
	for _, s := range g.symSet {
		closed := g.DerivationsOf(s)
		io.WriteString(g.gen, "\t{")
		for _, sym := range g.tab.Terminals {
			if closed.Get(sym.N) {
				io.WriteString(g.gen, "T,")
			} else {
				io.WriteString(g.gen, "x,")
			}
		}
		io.WriteString(g.gen, "x}, // EOF\n")
	}
	io.WriteString(g.gen, "};\n")
}

// GenCopyright copies the grammar's semantic-declarations prologue —
// the optional "(. ... .)" block following the GRAMMAR name, before
// TOKENS/PRODUCTIONS — into the output verbatim. A grammar without one
// leaves tab.SemDeclPos nil and this emits nothing.
func (g *Generator) GenCopyright() {
	if g.tab.SemDeclPos == nil {
		return
	}
	g.CopySourcePart(g.tab.SemDeclPos, 0)
}

// GenNamespaceOpen splits nsName on opts.NamespaceSeparator and emits
// one nested "namespace <segment> {" per component. An empty name
// emits nothing.
func (g *Generator) GenNamespaceOpen(name string) {
	for _, seg := range splitNamespace(name, g.opts.NamespaceSeparator) {
		fmt.Fprintf(g.gen, "namespace %s {\n", seg)
	}
}

// GenNamespaceClose closes what GenNamespaceOpen opened, in reverse
// order.
func (g *Generator) GenNamespaceClose(name string) {
	segs := splitNamespace(name, g.opts.NamespaceSeparator)
	for i := len(segs) - 1; i >= 0; i-- {
		io.WriteString(g.gen, "}\n")
	}
}

// GenPrefixFromNamespace emits the first namespace segment, upper-
// cased, for use in include-guard macro names.
func (g *Generator) GenPrefixFromNamespace(name string) {
	segs := splitNamespace(name, g.opts.NamespaceSeparator)
	if len(segs) == 0 {
		return
	}
	for _, ch := range segs[0] {
		if ch >= 'a' && ch <= 'z' {
			ch -= 'a' - 'A'
		}
		fmt.Fprintf(g.gen, "%c", ch)
	}
}

func splitNamespace(name string, sep byte) []string {
	if name == "" {
		return nil
	}
	var segs []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == sep {
			segs = append(segs, name[start:i])
			start = i + 1
		}
	}
	segs = append(segs, name[start:])
	return segs
}
