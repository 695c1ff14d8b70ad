package gen

import "github.com/dhamidi/cocogen/grammar"

// UseSwitch decides between a switch dispatch and an if/else chain for
// an alt node (spec.md §4.7, C7). It returns true iff p is an alt node
// with more than 5 alternatives, none of whose heads is a resolver
// (resolvers need inline conditional evaluation, not case labels), and
// no pair of alternatives has overlapping Expected0 sets — an overlap
// signals an LL(1) conflict that switch fall-through would silently
// mask (spec.md §8 invariant 4: UseSwitch never hides a conflict).
func (g *Generator) UseSwitch(p *grammar.Node) bool {
	if p.Kind != grammar.KindAlt {
		return false
	}
	nAlts := 0
	seen := grammar.NewTerminalSet(len(g.tab.Terminals))
	for p2 := p; p2 != nil; p2 = p2.Down {
		s2 := g.queries.Expected0(p2.Sub, g.curSy)
		if seen.Overlaps(s2) {
			return false
		}
		seen.Or(s2)
		nAlts++
		if p2.Sub.Kind == grammar.KindRslv {
			return false
		}
	}
	return nAlts > 5
}
