package gen

import "github.com/dhamidi/cocogen/grammar"

// DerivationsOf returns the least fixed point of s0 under: if sym is in
// the set and some terminal's Inherits points at sym, that terminal
// joins the set too (spec.md §4.2). Used at switch-label emission and
// when writing the static StartOf matrix, so a parent terminal named in
// a grammar set accepts every subtype terminal at runtime.
//
// s0 ⊆ DerivationsOf(s0), and DerivationsOf(DerivationsOf(s0)) ==
// DerivationsOf(s0) (spec.md §8 invariant 3) — both follow from
// iterating the single monotonic rule above to a fixed point.
func (g *Generator) DerivationsOf(s0 *grammar.TerminalSet) *grammar.TerminalSet {
	s := s0.Clone()
	done := false
	for !done {
		done = true
		for _, sym := range g.tab.Terminals {
			if !s.Get(sym.N) {
				continue
			}
			for _, base := range g.tab.Terminals {
				if base.Inherits == sym && !s.Get(base.N) {
					s.Set(base.N, true)
					done = false
				}
			}
		}
	}
	return s
}
