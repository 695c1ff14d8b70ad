package grammar

// NodeKind tags the variant a Node carries (spec.md §3). Dispatch over
// Kind is meant to be exhaustive — see DESIGN.md's note on spec.md §9's
// first Open Question: the original walked these as a chain of
// independent `if`s where a match on `eps` did not stop later tests
// from also running against the same node. This port treats NodeKind
// as a true sum type and switches on it exclusively.
type NodeKind int

const (
	KindNT   NodeKind = iota // nonterminal call
	KindT                    // terminal match
	KindWT                   // weak terminal
	KindAny                  // wildcard over an explicit terminal set
	KindEps                  // empty
	KindRslv                 // resolver: user boolean predicate, copied verbatim
	KindSem                  // semantic action, copied verbatim
	KindSync                 // synchronization point
	KindAlt                  // alternation
	KindIter                 // iteration ({ ... })
	KindOpt                  // option ([ ... ])
)

var nodeKindNames = map[NodeKind]string{
	KindNT:   "nt",
	KindT:    "t",
	KindWT:   "wt",
	KindAny:  "any",
	KindEps:  "eps",
	KindRslv: "rslv",
	KindSem:  "sem",
	KindSync: "sync",
	KindAlt:  "alt",
	KindIter: "iter",
	KindOpt:  "opt",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "?"
}

// Node is a vertex in a production graph (spec.md §3).
//
// Traversal along Next halts at, and includes, the first node whose Up
// is set — that node marks the end of a sub-sequence. For Alt, children
// link via Down and each child's Sub is that alternative's body. For
// Iter/Opt, the body lives under Sub and the continuation is Next.
type Node struct {
	Kind NodeKind

	Sym *Symbol      // nt, t, wt: target symbol
	Set *TerminalSet // any, sync: terminal bitset

	Sub  *Node // alt, iter, opt: structural child (alt: this arm's body)
	Down *Node // alt: next sibling alternative
	Next *Node // next node in the sequence at this level
	Up   bool  // boundary flag: traversal along Next stops at (and includes) this node

	Pos *Position // rslv, sem, nt-attribute: source-range reference
}

// Seq walks Next starting at p, calling f for each node up to and
// including the first node with Up set. It stops early if f returns
// false.
func Seq(p *Node, f func(*Node) bool) {
	for p != nil {
		if !f(p) {
			return
		}
		if p.Up {
			return
		}
		p = p.Next
	}
}

// Alts walks Down starting at p, calling f for each alternative.
func Alts(p *Node, f func(*Node) bool) {
	for p != nil {
		if !f(p) {
			return
		}
		p = p.Down
	}
}
