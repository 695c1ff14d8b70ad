// Package sets computes the FIRST/FOLLOW/Expected/Expected0/AnySync
// sets spec.md §1 and §6 list as "assumed available" external
// collaborators. The core (package gen) only ever calls the
// Computer's First/Expected/Expected0 methods; it never recomputes a
// closure itself.
package sets

import "github.com/dhamidi/cocogen/grammar"

// Computer answers First/Expected/Expected0 queries over a grammar
// table and owns the fixed-point First/Follow closures that back them.
// Grounded on the teacher's chart-closure loop in ebnf/parse/earley.go
// (iterate a worklist until nothing new is added), retargeted here at
// grammar closure instead of Earley item-set closure.
type Computer struct {
	tab *grammar.Table

	firstNT  map[*grammar.Symbol]*grammar.TerminalSet
	emptyNT  map[*grammar.Symbol]bool
	followNT map[*grammar.Symbol]*grammar.TerminalSet
}

// NewComputer builds a Computer and runs the First/Follow fixed points.
// Call Prepare afterward to fill in sync/any node sets and
// tab.AllSyncSets before handing the table to the generator.
func NewComputer(tab *grammar.Table) *Computer {
	c := &Computer{
		tab:      tab,
		firstNT:  make(map[*grammar.Symbol]*grammar.TerminalSet),
		emptyNT:  make(map[*grammar.Symbol]bool),
		followNT: make(map[*grammar.Symbol]*grammar.TerminalSet),
	}
	nTerm := len(tab.Terminals)
	for _, nt := range tab.Nonterminals {
		c.firstNT[nt] = grammar.NewTerminalSet(nTerm)
		c.followNT[nt] = grammar.NewTerminalSet(nTerm)
	}
	c.fixFirst()
	c.fixFollow()
	return c
}

func (c *Computer) nTerm() int { return len(c.tab.Terminals) }

// fixFirst runs First/derives-empty to a fixed point over every
// nonterminal's graph using the current best approximation for
// referenced nonterminals — the same "iterate until no change" shape
// as DerivationsOf (gen/derive.go), just over the whole symbol table
// instead of one bitset.
func (c *Computer) fixFirst() {
	changed := true
	for changed {
		changed = false
		for _, nt := range c.tab.Nonterminals {
			s, eps := c.seqFirstApprox(nt.Graph)
			if !s.Equals(c.firstNT[nt]) {
				c.firstNT[nt] = s
				changed = true
			}
			if eps && !c.emptyNT[nt] {
				c.emptyNT[nt] = true
				changed = true
			}
		}
	}
}

// seqFirstApprox computes First/derives-empty for the sequence starting
// at p using the CURRENT contents of firstNT/emptyNT for any nonterminal
// reference encountered (no further recursion into their graphs) — this
// is what makes fixFirst's outer loop a proper fixed-point iteration
// rather than unbounded recursion on left-recursive grammars.
func (c *Computer) seqFirstApprox(p *grammar.Node) (*grammar.TerminalSet, bool) {
	acc := grammar.NewTerminalSet(c.nTerm())
	if p == nil {
		return acc, true
	}
	cur := p
	for {
		s, eps := c.nodeFirstApprox(cur)
		acc.Or(s)
		if !eps {
			return acc, false
		}
		if cur.Up {
			return acc, true
		}
		cur = cur.Next
	}
}

func (c *Computer) nodeFirstApprox(p *grammar.Node) (*grammar.TerminalSet, bool) {
	switch p.Kind {
	case grammar.KindNT:
		return c.firstNT[p.Sym].Clone(), c.emptyNT[p.Sym]
	case grammar.KindT, grammar.KindWT:
		s := grammar.NewTerminalSet(c.nTerm())
		s.Set(p.Sym.N, true)
		return s, false
	case grammar.KindAny:
		if p.Set != nil {
			return p.Set.Clone(), false
		}
		return grammar.NewTerminalSet(c.nTerm()), false
	case grammar.KindEps, grammar.KindRslv, grammar.KindSem, grammar.KindSync:
		return grammar.NewTerminalSet(c.nTerm()), true
	case grammar.KindAlt:
		acc := grammar.NewTerminalSet(c.nTerm())
		anyEmpty := false
		for p2 := p; p2 != nil; p2 = p2.Down {
			s, eps := c.seqFirstApprox(p2.Sub)
			acc.Or(s)
			if eps {
				anyEmpty = true
			}
		}
		return acc, anyEmpty
	case grammar.KindIter, grammar.KindOpt:
		s, _ := c.seqFirstApprox(p.Sub)
		return s, true
	}
	return grammar.NewTerminalSet(c.nTerm()), true
}

// First returns the terminals that may start any string derivable from
// the sequence starting at p (spec.md GLOSSARY). p may be nil (empty
// continuation), in which case First is empty.
func (c *Computer) First(p *grammar.Node) *grammar.TerminalSet {
	s, _ := c.seqFirstApprox(p)
	return s
}

func (c *Computer) derivesEmpty(p *grammar.Node) bool {
	_, eps := c.seqFirstApprox(p)
	return eps
}

// Expected returns the terminals that may appear at p in the context of
// ctxSym: First(p), plus Follow(ctxSym) if p can derive the empty
// string (spec.md GLOSSARY).
func (c *Computer) Expected(p *grammar.Node, ctxSym *grammar.Symbol) *grammar.TerminalSet {
	s, eps := c.seqFirstApprox(p)
	if eps {
		s.Or(c.Follow(ctxSym))
	}
	return s
}

// Expected0 is First(p) alone, without Follow propagation — used by
// UseSwitch (gen/altshape.go) for LL(1) conflict detection.
func (c *Computer) Expected0(p *grammar.Node, ctxSym *grammar.Symbol) *grammar.TerminalSet {
	return c.First(p)
}

// Follow returns the Follow set of a nonterminal symbol.
func (c *Computer) Follow(sym *grammar.Symbol) *grammar.TerminalSet {
	if s, ok := c.followNT[sym]; ok {
		return s.Clone()
	}
	return grammar.NewTerminalSet(c.nTerm())
}
