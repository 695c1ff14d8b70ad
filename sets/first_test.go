package sets

import (
	"strings"
	"testing"

	"github.com/dhamidi/cocogen/grammar"
)

func parseOrFatal(t *testing.T, src string) *grammar.Table {
	t.Helper()
	tab, err := grammar.Parse("test.atg", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return tab
}

func termNamed(tab *grammar.Table, name string) *grammar.Symbol {
	for _, s := range tab.Terminals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func ntNamed(tab *grammar.Table, name string) *grammar.Symbol {
	for _, s := range tab.Nonterminals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestFirstOverRecursiveGrammar(t *testing.T) {
	// E = T { "+" T } .
	// T = "id" | "(" E ")" .
	tab := parseOrFatal(t, `
GRAMMAR g
TOKENS
  id
PRODUCTIONS
E = T { "+" T } .
T = id | "(" E ")" .
END g .
`)
	c := NewComputer(tab)

	e := ntNamed(tab, "E")
	fs := c.First(e.Graph)
	id := termNamed(tab, "id")
	lparen := tab.Literals[`"("`]
	if !fs.Get(id.N) {
		t.Errorf("First(E) missing id")
	}
	if !fs.Get(lparen.N) {
		t.Errorf("First(E) missing \"(\"")
	}
	if fs.Elements() != 2 {
		t.Errorf("First(E) has %d elements, want 2", fs.Elements())
	}
}

func TestFollowPropagatesThroughNonterminalCall(t *testing.T) {
	// S = A "end" .
	// A = "a" .
	tab := parseOrFatal(t, `
GRAMMAR g
TOKENS
PRODUCTIONS
S = A "end" .
A = "a" .
END g .
`)
	c := NewComputer(tab)
	a := ntNamed(tab, "A")
	follow := c.Follow(a)
	end := tab.Literals[`"end"`]
	if !follow.Get(end.N) {
		t.Fatalf("Follow(A) missing \"end\"")
	}
}

func TestExpectedAddsFollowWhenNullable(t *testing.T) {
	// Start = S "x" .
	// S = [A] .       -- S itself derives empty (A is optional)
	// A = "a" .
	//
	// Querying Expected over S's own graph (the whole, genuinely
	// nullable production body) must add Follow(S) = {"x"}.
	tab := parseOrFatal(t, `
GRAMMAR g
TOKENS
PRODUCTIONS
Start = S "x" .
S = [A] .
A = "a" .
END g .
`)
	c := NewComputer(tab)
	s := ntNamed(tab, "S")
	expected := c.Expected(s.Graph, s)
	a := tab.Literals[`"a"`]
	x := tab.Literals[`"x"`]
	if !expected.Get(a.N) {
		t.Errorf("Expected(S) missing \"a\"")
	}
	if !expected.Get(x.N) {
		t.Errorf("Expected(S) missing follow \"x\" — S derives empty, so Follow(S) must be included")
	}
}

func TestPrepareFillsBareAnyAndSyncSets(t *testing.T) {
	tab := parseOrFatal(t, `
GRAMMAR g
TOKENS
  a b
PRODUCTIONS
S = a SYNC b ANY .
END g .
`)
	c := NewComputer(tab)
	c.Prepare()

	s := ntNamed(tab, "S")
	n := s.Graph // a
	n = n.Next   // sync
	if n.Set == nil {
		t.Fatalf("SYNC node set not filled by Prepare")
	}
	n = n.Next // b
	n = n.Next // any
	if n.Set == nil || n.Set.Elements() != len(tab.Terminals) {
		t.Fatalf("bare ANY should resolve to the full terminal set, got %v", n.Set)
	}
	if tab.AllSyncSets == nil {
		t.Fatalf("Prepare must populate tab.AllSyncSets")
	}
}
