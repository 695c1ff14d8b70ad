package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/grammar"
)

const (
	cr = 13
	lf = 10
)

// Indent writes n tabs to gen's current output.
func (g *Generator) Indent(n int) {
	for i := 0; i < n; i++ {
		io.WriteString(g.gen, "\t")
	}
}

// CopySourcePart copies the text described by pos from the buffered
// grammar source to the current output (spec.md §4.3). It is how the
// core reproduces user-embedded semantic actions and resolver
// expressions verbatim.
//
// On every line break it re-indents by indent tabs, then consumes up to
// pos.Col leading blanks/tabs so the fragment's original visual column
// doesn't compound with the new indentation. CR, LF, and CRLF are all
// normalized to LF. A trailing newline is added when indent > 0. pos
// may be nil, in which case nothing is emitted (mirrors "if (pos !=
// NULL)" in the original).
func (g *Generator) CopySourcePart(pos *grammar.Position, indent int) {
	if pos == nil {
		return
	}
	g.buf.SetPos(pos.Beg)
	ch := g.buf.Read()

	if g.opts.EmitLines && pos.Line != 0 {
		fmt.Fprintf(g.gen, "\n#line %d \"%s\"\n", pos.Line, g.tab.SrcName)
	}
	g.Indent(indent)

	for g.buf.GetPos() <= pos.End {
		for ch == cr || ch == lf {
			io.WriteString(g.gen, "\n")
			g.Indent(indent)
			if ch == cr {
				ch = g.buf.Read()
			}
			if ch == lf {
				ch = g.buf.Read()
			}
			for i := 0; i < pos.Col && (ch == ' ' || ch == '\t'); i++ {
				ch = g.buf.Read()
			}
			if g.buf.GetPos() > pos.End {
				if indent > 0 {
					io.WriteString(g.gen, "\n")
				}
				return
			}
		}
		if ch < 0 {
			break
		}
		fmt.Fprintf(g.gen, "%c", rune(ch))
		ch = g.buf.Read()
	}
	if indent > 0 {
		io.WriteString(g.gen, "\n")
	}
}
