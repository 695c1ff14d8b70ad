package main

import (
	"strings"
	"testing"

	"github.com/dhamidi/cocogen/diag"
	"github.com/dhamidi/cocogen/grammar"
	"github.com/dhamidi/cocogen/sets"
)

func parseAndPrepare(t *testing.T, src string) (*grammar.Table, *sets.Computer) {
	t.Helper()
	tab, err := grammar.Parse("test.atg", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := sets.NewComputer(tab)
	c.Prepare()
	return tab, c
}

func TestCheckUnusedNonterminalsReportsUndefined(t *testing.T) {
	tab, _ := parseAndPrepare(t, `
GRAMMAR g
TOKENS
  a
PRODUCTIONS
S = a Missing .
END g .
`)
	sink := diag.NewList()
	checkUnusedNonterminals(tab, sink)
	if !sink.HasErrors() {
		t.Fatalf("expected an error for the undefined nonterminal Missing")
	}
}

func TestCheckAlternationConflictsReportsOverlap(t *testing.T) {
	// S = "a" | "a" "b" .  -- both arms start with "a"
	tab, c := parseAndPrepare(t, `
GRAMMAR g
TOKENS
PRODUCTIONS
S = "a" | "a" "b" .
END g .
`)
	sink := diag.NewList()
	checkAlternationConflicts(tab, c, sink)
	found := false
	for _, d := range sink.Items() {
		if strings.Contains(d.Message, "overlap") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an overlap diagnostic, got %v", sink.Items())
	}
}

func TestCheckAlternationConflictsSilentOnDisjointArms(t *testing.T) {
	// S = "a" | "b" .  -- LL(1), no overlap
	tab, c := parseAndPrepare(t, `
GRAMMAR g
TOKENS
PRODUCTIONS
S = "a" | "b" .
END g .
`)
	sink := diag.NewList()
	checkAlternationConflicts(tab, c, sink)
	if len(sink.Items()) != 0 {
		t.Fatalf("expected no diagnostics for a disjoint alternation, got %v", sink.Items())
	}
}
