package grammar

// TokenKind enumerates the lexical categories of the attributed-EBNF
// DSL the ingestion lexer recognizes. Mirrors the iota-block-plus-
// name-table shape used throughout the teacher's lexers.
type TokenKind int

const (
	TokEOF TokenKind = iota
	TokError

	TokIdent
	TokString // "literal"

	TokDot
	TokBar
	TokLParen
	TokRParen
	TokLBrack
	TokRBrack
	TokLBrace
	TokRBrace
	TokAssign // =
	TokSemAction  // (. ... .)
	TokResolver   // IF ( ... )

	TokKwGrammar
	TokKwTokens
	TokKwPragmas
	TokKwProductions
	TokKwEnd
	TokKwInherits
	TokKwWeak
	TokKwAny
	TokKwSync
)

var tokenKindNames = map[TokenKind]string{
	TokEOF:           "EOF",
	TokError:         "Error",
	TokIdent:         "Ident",
	TokString:        "String",
	TokDot:           "Dot",
	TokBar:           "Bar",
	TokLParen:        "LParen",
	TokRParen:        "RParen",
	TokLBrack:        "LBrack",
	TokRBrack:        "RBrack",
	TokLBrace:        "LBrace",
	TokRBrace:        "RBrace",
	TokAssign:        "Assign",
	TokSemAction:     "SemAction",
	TokResolver:      "Resolver",
	TokKwGrammar:     "GRAMMAR",
	TokKwTokens:      "TOKENS",
	TokKwPragmas:     "PRAGMAS",
	TokKwProductions: "PRODUCTIONS",
	TokKwEnd:         "END",
	TokKwInherits:    "INHERITS",
	TokKwWeak:        "WEAK",
	TokKwAny:         "ANY",
	TokKwSync:        "SYNC",
}

func (k TokenKind) String() string {
	if s, ok := tokenKindNames[k]; ok {
		return s
	}
	return "?"
}

var keywords = map[string]TokenKind{
	"GRAMMAR":     TokKwGrammar,
	"TOKENS":      TokKwTokens,
	"PRAGMAS":     TokKwPragmas,
	"PRODUCTIONS": TokKwProductions,
	"END":         TokKwEnd,
	"INHERITS":    TokKwInherits,
	"WEAK":        TokKwWeak,
	"ANY":         TokKwAny,
	"SYNC":        TokKwSync,
}

// Token is a single lexical token with its position and the literal
// text matched. A String literal keeps its quotes; a SemAction or
// Resolver literal is the embedded text without its delimiters, and
// its Pos spans exactly that text.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return t.Pos.String() + " " + t.Kind.String() + " " + t.Literal
}
