package gen

import "github.com/dhamidi/cocogen/grammar"

// NewCondSet interns s, returning a stable index i >= 1 such that
// symSet[i] equals s by value (spec.md §4.1). Index 0 is reserved for
// the sync-set union pre-seeded in New and is never returned here.
//
// Deterministic: entries are assigned in first-appearance order, and
// NewCondSet(a) == NewCondSet(b) iff a and b are equal by value
// (spec.md §8 invariant 2).
func (g *Generator) NewCondSet(s *grammar.TerminalSet) int {
	for i := 1; i < len(g.symSet); i++ {
		if s.Equals(g.symSet[i]) {
			return i
		}
	}
	g.symSet = append(g.symSet, s.Clone())
	return len(g.symSet) - 1
}
