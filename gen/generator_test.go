package gen

import (
	"strings"
	"testing"

	"github.com/dhamidi/cocogen/grammar"
	"github.com/dhamidi/cocogen/sets"
)

func buildGenerator(t *testing.T, src string, opts Options) (*Generator, *grammar.Table) {
	t.Helper()
	tab, err := grammar.Parse("test.atg", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := sets.NewComputer(tab)
	c.Prepare()
	buf, err := grammar.NewBuffer(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	return New(tab, buf, c, opts), tab
}

func TestNewCondSetDeterministicInterning(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b c
PRODUCTIONS
S = a | b | c .
END g .
`, DefaultOptions())

	s1 := grammar.NewTerminalSet(len(tab.Terminals))
	s1.Set(0, true)
	s2 := grammar.NewTerminalSet(len(tab.Terminals))
	s2.Set(0, true)

	i1 := g.NewCondSet(s1)
	i2 := g.NewCondSet(s2)
	if i1 != i2 {
		t.Fatalf("NewCondSet(a) = %d, NewCondSet(b) = %d; equal sets must intern to the same index", i1, i2)
	}
	if i1 == 0 {
		t.Fatalf("index 0 is reserved for the sync-set union")
	}

	s3 := grammar.NewTerminalSet(len(tab.Terminals))
	s3.Set(1, true)
	i3 := g.NewCondSet(s3)
	if i3 == i1 {
		t.Fatalf("distinct sets must not share an interned index")
	}
}

func TestDerivationsOfIsAFixedPoint(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  base
  sub1 INHERITS base
  sub2 INHERITS sub1
PRODUCTIONS
S = base | sub1 | sub2 .
END g .
`, DefaultOptions())

	base := tab.FindTerminal("base")
	s0 := grammar.NewTerminalSet(len(tab.Terminals))
	s0.Set(base.N, true)

	closed := g.DerivationsOf(s0)
	sub1 := tab.FindTerminal("sub1")
	sub2 := tab.FindTerminal("sub2")
	if !closed.Get(sub1.N) || !closed.Get(sub2.N) {
		t.Fatalf("DerivationsOf({base}) must include every transitive inheritor, got %v", closed.Elements())
	}

	twice := g.DerivationsOf(closed)
	if !twice.Equals(closed) {
		t.Fatalf("DerivationsOf is not idempotent: DerivationsOf(closed) != closed")
	}

	if !s0.Get(base.N) {
		t.Fatalf("s0 must remain unmutated by DerivationsOf")
	}
}

func TestGenErrorMsgIndicesAreDenseAndMonotone(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b
PRODUCTIONS
S = a | b .
END g .
`, DefaultOptions())

	for i, sym := range tab.Terminals {
		g.GenErrorMsg(tErr, sym)
		if g.errorNr != i {
			t.Fatalf("GenErrorMsg #%d assigned errorNr %d, want %d", i, g.errorNr, i)
		}
	}
	if g.ErrorCount() != len(tab.Terminals) {
		t.Fatalf("ErrorCount() = %d, want %d", g.ErrorCount(), len(tab.Terminals))
	}
}

func TestUseSwitchRequiresMoreThanFiveNonOverlappingAlts(t *testing.T) {
	g, _ := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b c
PRODUCTIONS
Few = a | b | c .
END g .
`, DefaultOptions())

	few := g.tab.FindNonterminal("Few")
	if g.UseSwitch(few.Graph) {
		t.Fatalf("three alternatives must not trigger switch form")
	}
}

func TestUseSwitchWithSixDisjointAlts(t *testing.T) {
	g, _ := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b c d e f
PRODUCTIONS
Many = a | b | c | d | e | f .
END g .
`, DefaultOptions())

	many := g.tab.FindNonterminal("Many")
	if !g.UseSwitch(many.Graph) {
		t.Fatalf("six disjoint alternatives should select switch form")
	}
}

func TestUseSwitchFalseWhenResolverHeadsAnAlt(t *testing.T) {
	g, _ := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b c d e f
PRODUCTIONS
Many = IF(x) a | b | c | d | e | f .
END g .
`, DefaultOptions())

	many := g.tab.FindNonterminal("Many")
	if g.UseSwitch(many.Graph) {
		t.Fatalf("a resolver-headed alternative must force the if-chain, never switch")
	}
}

func TestGenCodeEmitsExpectForSingleTerminalSequence(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  a
PRODUCTIONS
S = a .
END g .
`, DefaultOptions())

	var out strings.Builder
	g.gen = &out
	g.curSy = tab.GramSy
	empty := grammar.NewTerminalSet(len(tab.Terminals))
	g.GenCode(tab.GramSy.Graph, 1, empty)

	if !strings.Contains(out.String(), "Expect(_a)") {
		t.Fatalf("expected an Expect(_a) call, got: %s", out.String())
	}
}

func TestGenCodeIsCheckedElidesExpect(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  a
PRODUCTIONS
S = a .
END g .
`, DefaultOptions())

	var out strings.Builder
	g.gen = &out
	g.curSy = tab.GramSy
	checked := grammar.NewTerminalSet(len(tab.Terminals))
	a := tab.FindTerminal("a")
	checked.Set(a.N, true)
	g.GenCode(tab.GramSy.Graph, 1, checked)

	if !strings.Contains(out.String(), "Get();") {
		t.Fatalf("a pre-checked terminal should emit Get(), got: %s", out.String())
	}
	if strings.Contains(out.String(), "Expect(") {
		t.Fatalf("a pre-checked terminal must not also Expect, got: %s", out.String())
	}
}

func TestGenCodeRREBNFCountsTokens(t *testing.T) {
	g, tab := buildGenerator(t, `
GRAMMAR g
TOKENS
  a b
PRODUCTIONS
S = a b .
END g .
`, DefaultOptions())

	var out strings.Builder
	n := g.GenCodeRREBNF(&out, tab.GramSy.Graph, 0)
	if n != 2 {
		t.Fatalf("token count = %d, want 2", n)
	}
	if !strings.Contains(out.String(), `"a"`) && !strings.Contains(out.String(), "a") {
		t.Fatalf("expected rendering to mention a, got %q", out.String())
	}
}
