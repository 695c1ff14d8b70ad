package gen

import (
	"strings"
	"testing"
)

func TestWriteParserEndToEndWithEmbeddedFrame(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  ident
PRODUCTIONS
S = { ident } .
END g .
`, DefaultOptions())
	tab.NsName = "demo"

	var header, source strings.Builder
	if err := g.WriteParser(&header, &source, ""); err != nil {
		t.Fatalf("WriteParser: %v", err)
	}

	h := header.String()
	if !strings.Contains(h, "namespace demo {") {
		t.Errorf("header missing namespace open, got:\n%s", h)
	}
	if !strings.Contains(h, "_ident=") {
		t.Errorf("header missing token enum entry for ident, got:\n%s", h)
	}
	if !strings.Contains(h, "void S_NT(") {
		t.Errorf("header missing S_NT production prototype, got:\n%s", h)
	}

	s := source.String()
	if !strings.Contains(s, "void Parser::S_NT(") {
		t.Errorf("source missing S_NT production body, got:\n%s", s)
	}
	if !strings.Contains(s, "S_NT();") {
		t.Errorf("source missing start-symbol call in Parse(), got:\n%s", s)
	}
	if !strings.Contains(s, "static bool set[][") {
		t.Errorf("source missing StartOf matrix, got:\n%s", s)
	}
	if g.ErrorCount() < 1 {
		t.Errorf("ErrorCount() = %d, want at least one pre-registered tErr", g.ErrorCount())
	}
}

func TestWriteParserEmitsSemanticDeclarationsPrologue(t *testing.T) {
	g, _ := buildGenerator(t, `
GRAMMAR g
(. struct Counter { int n; }; .)
TOKENS
  ident
PRODUCTIONS
S = { ident } .
END g .
`, DefaultOptions())

	var header, source strings.Builder
	if err := g.WriteParser(&header, &source, ""); err != nil {
		t.Fatalf("WriteParser: %v", err)
	}
	if !strings.Contains(header.String(), "struct Counter") {
		t.Errorf("header missing copied semantic-declarations prologue, got:\n%s", header.String())
	}
}

func TestWriteParserCheckEOFEmitsTrailingExpect(t *testing.T) {
	opts := DefaultOptions()
	opts.CheckEOF = true
	g, _ := buildGenerator(t, `
GRAMMAR g
TOKENS
  a
PRODUCTIONS
S = a .
END g .
`, opts)

	var header, source strings.Builder
	if err := g.WriteParser(&header, &source, ""); err != nil {
		t.Fatalf("WriteParser: %v", err)
	}
	if !strings.Contains(source.String(), "Expect(0);") {
		t.Errorf("CheckEOF should emit a trailing Expect(0), got:\n%s", source.String())
	}
}
