package gen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/cocogen/grammar"
)

// escape renders a literal terminal name (which includes its quotes)
// safe to embed inside a double-quoted Go/C string literal.
func escape(name string) string {
	var sb strings.Builder
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch == '"' || ch == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// GenErrorMsg appends a numbered case line to the error-message table
// (spec.md §4.4). The assigned number is errorNr after the call — error
// table indices are dense and monotone (spec.md §8 invariant 1): this
// is the only place errorNr is incremented.
func (g *Generator) GenErrorMsg(kind int, sym *grammar.Symbol) {
	g.errorNr++
	fmt.Fprintf(&g.err, "\t\t\tcase %d: s = \"", g.errorNr)
	switch kind {
	case tErr:
		if sym.IsLiteral() {
			fmt.Fprintf(&g.err, "%s expected", escape(sym.Name))
		} else {
			fmt.Fprintf(&g.err, "%s expected", sym.Name)
		}
	case altErr:
		fmt.Fprintf(&g.err, "invalid %s", sym.Name)
	case syncErr:
		fmt.Fprintf(&g.err, "this symbol not expected in %s", sym.Name)
	}
	fmt.Fprintf(&g.err, "\"; break;\n")
}

// ErrorCount reports how many error messages have been registered so
// far. errorNr is 0-based: the pre-registration pass that WriteParser
// runs over every terminal gives terminal i the message number i.
func (g *Generator) ErrorCount() int { return g.errorNr + 1 }
