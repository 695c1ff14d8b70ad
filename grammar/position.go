package grammar

import "fmt"

// Position is a source-range reference into the grammar text, used by
// Symbol.AttrPos/SemPos and Node.Pos to let the generator copy
// user-embedded text (attributes, semantic actions, resolver
// expressions) verbatim.
type Position struct {
	File string
	Beg  int // byte offset, inclusive
	End  int // byte offset, exclusive
	Line int // 1-based line of Beg
	Col  int // column of Beg, used by CopySourcePart to strip re-indentation
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}
