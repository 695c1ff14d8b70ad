package diag

import (
	"strings"
	"testing"

	"github.com/dhamidi/cocogen/grammar"
)

func TestListOrdersByPositionAndTracksErrors(t *testing.T) {
	l := NewList()
	l.Report(Diagnostic{Severity: Warning, Message: "late", Pos: &grammar.Position{Line: 5, Col: 1}})
	l.Report(Diagnostic{Severity: Error, Message: "early", Pos: &grammar.Position{Line: 1, Col: 1}})
	l.Report(Diagnostic{Severity: Fatal, Message: "no position"})

	items := l.Items()
	if len(items) != 3 {
		t.Fatalf("len(Items()) = %d, want 3", len(items))
	}
	if items[0].Message != "early" {
		t.Fatalf("items[0] = %q, want early (lowest position sorts first)", items[0].Message)
	}
	if items[len(items)-1].Message != "no position" {
		t.Fatalf("a position-less diagnostic should sort last, got %q", items[len(items)-1].Message)
	}
	if !l.HasErrors() {
		t.Fatalf("HasErrors() = false, want true (an Error and a Fatal were reported)")
	}
}

func TestPrinterRendersPositionSeverityMessage(t *testing.T) {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Report(Diagnostic{
		Severity: Error,
		Message:  "unexpected token",
		Pos:      &grammar.Position{File: "g.atg", Line: 3, Col: 4},
	})
	out := sb.String()
	if !strings.Contains(out, "g.atg:3:4") || !strings.Contains(out, "error") || !strings.Contains(out, "unexpected token") {
		t.Fatalf("Printer output missing position/severity/message: %q", out)
	}
}

func TestListHasErrorsFalseForWarningsOnly(t *testing.T) {
	l := NewList()
	l.Report(Diagnostic{Severity: Warning, Message: "heads up"})
	if l.HasErrors() {
		t.Fatalf("HasErrors() = true, want false: only a warning was reported")
	}
}
