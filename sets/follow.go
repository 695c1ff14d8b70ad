package sets

import "github.com/dhamidi/cocogen/grammar"

// fixFollow runs Follow to a fixed point: Follow(X) gains First(rest)
// for every nt-call to X, and also gains Follow(enclosing) whenever
// that call is last in its sequence (or what follows it derives ε).
// Monotonic growth over a bounded universe, so this terminates.
func (c *Computer) fixFollow() {
	changed := true
	for changed {
		changed = false
		for _, nt := range c.tab.Nonterminals {
			if c.collectFollow(nt.Graph, nt) {
				changed = true
			}
		}
	}
}

// collectFollow walks the sequence/alt/iter/opt structure rooted at p,
// which lives inside nonterminal ctxSym's graph (or a Sub of it),
// growing followNT for every nt-call node it finds. What follows the
// *end* of any sequence in this graph is taken to be whatever follows
// ctxSym itself. Returns true if any Follow set grew.
func (c *Computer) collectFollow(p *grammar.Node, ctxSym *grammar.Symbol) bool {
	changed := false
	cur := p
	for cur != nil {
		switch cur.Kind {
		case grammar.KindNT:
			var rest *grammar.TerminalSet
			var restEmpty bool
			if cur.Up {
				rest = grammar.NewTerminalSet(c.nTerm())
				restEmpty = true
			} else {
				rest, restEmpty = c.seqFirstApprox(cur.Next)
			}
			if c.growFollow(cur.Sym, rest) {
				changed = true
			}
			if restEmpty {
				if c.growFollow(cur.Sym, c.followNT[ctxSym]) {
					changed = true
				}
			}
		case grammar.KindAlt:
			for p2 := cur; p2 != nil; p2 = p2.Down {
				if c.collectFollow(p2.Sub, ctxSym) {
					changed = true
				}
			}
		case grammar.KindIter, grammar.KindOpt:
			if c.collectFollow(cur.Sub, ctxSym) {
				changed = true
			}
		}
		if cur.Up {
			break
		}
		cur = cur.Next
	}
	return changed
}

func (c *Computer) growFollow(sym *grammar.Symbol, add *grammar.TerminalSet) bool {
	cur := c.followNT[sym]
	before := cur.Elements()
	cur.Or(add)
	return cur.Elements() != before
}

// Prepare fills in the node-level sets spec.md's ingestion leaves to
// the "precomputed" collaborators: every sync node's recovery set
// (Expected(node.Next, enclosing nonterminal) — the set of terminals
// safe to resume on) and every bare ANY node's set (every terminal, the
// most permissive reading absent an explicit ANY(...) list), then
// tab.AllSyncSets as the union of all sync sets. Must run after the
// First/Follow fixed points NewComputer already computed, and must run
// before the generator starts emitting (spec.md §6: allSyncSets is a
// precomputed input).
func (c *Computer) Prepare() {
	allSync := grammar.NewTerminalSet(c.nTerm())
	for _, nt := range c.tab.Nonterminals {
		c.fillNode(nt.Graph, nt, allSync)
	}
	c.tab.AllSyncSets = allSync
}

func (c *Computer) fillNode(p *grammar.Node, ctxSym *grammar.Symbol, allSync *grammar.TerminalSet) {
	cur := p
	for cur != nil {
		switch cur.Kind {
		case grammar.KindSync:
			if cur.Set == nil {
				cur.Set = c.Expected(cur.Next, ctxSym)
			}
			allSync.Or(cur.Set)
		case grammar.KindAny:
			if cur.Set == nil {
				cur.Set = grammar.NewTerminalSet(c.nTerm())
				cur.Set.SetAll(true)
			} else {
				// An explicit ANY(...) list was sized at parse time,
				// before later productions could introduce further
				// literal terminals (grammar/parser.go). Grow it to the
				// final terminal count now that ingestion is complete,
				// so GenCond's per-terminal Get(sym.N) never indexes
				// past this set's backing words.
				cur.Set.Grow(c.nTerm())
			}
		case grammar.KindAlt:
			for p2 := cur; p2 != nil; p2 = p2.Down {
				c.fillNode(p2.Sub, ctxSym, allSync)
			}
		case grammar.KindIter, grammar.KindOpt:
			c.fillNode(cur.Sub, ctxSym, allSync)
		}
		if cur.Up {
			break
		}
		cur = cur.Next
	}
}
