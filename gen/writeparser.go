package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/frame"
)

// WriteParser orchestrates C1-C10: it pre-registers one tErr message
// per terminal, then streams the header file and the source file from
// a single frame template, interleaving each marker with the matching
// emitter from §4.8 (spec.md §4.10, §6).
//
// framePath selects a template file; an empty string uses the
// embedded default (frame.Load). Both header and source are left open
// for the caller to close.
func (g *Generator) WriteParser(header, source io.Writer, framePath string) error {
	fr, err := frame.Load(framePath)
	if err != nil {
		return err
	}

	for _, sym := range g.tab.Terminals {
		g.GenErrorMsg(tErr, sym)
	}

	g.gen = header
	if err := fr.SkipFramePart("-->begin"); err != nil {
		return err
	}
	if err := fr.CopyFramePart(header, "-->prefix"); err != nil {
		return err
	}
	g.GenPrefixFromNamespace(g.tab.NsName)
	if err := fr.CopyFramePart(header, "-->prefix"); err != nil {
		return err
	}
	g.GenPrefixFromNamespace(g.tab.NsName)
	if err := fr.CopyFramePart(header, "-->headerdef"); err != nil {
		return err
	}
	if err := fr.CopyFramePart(header, "-->namespace_open"); err != nil {
		return err
	}
	g.GenNamespaceOpen(g.tab.NsName)
	if err := fr.CopyFramePart(header, "-->constantsheader"); err != nil {
		return err
	}
	g.GenTokensHeader()
	if err := fr.CopyFramePart(header, "-->declarations"); err != nil {
		return err
	}
	g.GenCopyright()
	if err := fr.CopyFramePart(header, "-->productionsheader"); err != nil {
		return err
	}
	g.GenProductionsHeader()
	if err := fr.CopyFramePart(header, "-->namespace_close"); err != nil {
		return err
	}
	g.GenNamespaceClose(g.tab.NsName)
	if err := fr.CopyFramePart(header, "-->implementation"); err != nil {
		return err
	}

	g.gen = source
	if err := fr.CopyFramePart(source, "-->namespace_open"); err != nil {
		return err
	}
	g.GenNamespaceOpen(g.tab.NsName)
	if err := fr.CopyFramePart(source, "-->pragmas"); err != nil {
		return err
	}
	g.GenCodePragmas()
	if err := fr.CopyFramePart(source, "-->tbase"); err != nil {
		return err
	}
	g.GenTokenBase()
	if err := fr.CopyFramePart(source, "-->productions"); err != nil {
		return err
	}
	g.GenProductions()
	if err := fr.CopyFramePart(source, "-->parseRoot"); err != nil {
		return err
	}
	g.genParseRoot()
	if err := fr.CopyFramePart(source, "-->constants"); err != nil {
		return err
	}
	g.InitSets()
	if err := fr.CopyFramePart(source, "-->initialization"); err != nil {
		return err
	}
	if err := fr.CopyFramePart(source, "-->errors"); err != nil {
		return err
	}
	io.WriteString(source, g.err.String())
	if err := fr.CopyFramePart(source, "-->namespace_close"); err != nil {
		return err
	}
	g.GenNamespaceClose(g.tab.NsName)
	return fr.CopyFramePart(source, "")
}

// genParseRoot emits the start-symbol call and, when CheckEOF is set,
// a trailing EOF expectation (spec.md §4.8 WriteParser, §6 checkEOF).
func (g *Generator) genParseRoot() {
	if g.tab.GramSy == nil {
		return
	}
	g.curSy = g.tab.GramSy
	fmt.Fprintf(g.gen, "\t%s_NT();\n", g.tab.GramSy.Name)
	if g.opts.CheckEOF {
		io.WriteString(g.gen, "\tExpect(0);\n")
	}
}

// WriteStatistics reports the post-run counters §6 lists: number of
// terminals, total symbols, node count, and condition-set count.
func (g *Generator) WriteStatistics(w io.Writer) {
	total := len(g.tab.Terminals) + len(g.tab.Pragmas) + len(g.tab.Nonterminals)
	fmt.Fprintf(w, "%d terminals\n", len(g.tab.Terminals))
	fmt.Fprintf(w, "%d symbols\n", total)
	fmt.Fprintf(w, "%d nodes\n", g.NodeCount())
	fmt.Fprintf(w, "%d condition sets\n", g.CondSetCount())
}
