package gen

import (
	"fmt"
	"io"

	"github.com/dhamidi/cocogen/grammar"
)

// WriteSymbolOrCode writes a terminal's enum reference (_name) if its
// name starts with a letter, or its bare numeric id (with a comment
// naming it) otherwise — pure-symbol terminals declared only as
// quoted literals are referenced by numeric literal, never by name
// (spec.md §4.8 GenTokensHeader).
func WriteSymbolOrCode(w io.Writer, sym *grammar.Symbol) {
	if len(sym.Name) > 0 && isLetter(sym.Name[0]) {
		fmt.Fprintf(w, "_%s", sym.Name)
	} else {
		fmt.Fprintf(w, "%d /* %s */", sym.N, sym.Name)
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
