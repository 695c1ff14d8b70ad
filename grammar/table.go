package grammar

// Table is the read-only-during-emission symbol table the core
// consumes (spec.md §6's "Inputs consumed from collaborators").
type Table struct {
	Terminals    []*Symbol
	Nonterminals []*Symbol
	Pragmas      []*Symbol
	Literals     map[string]*Symbol // keyword/literal text -> terminal
	Nodes        []*Node             // arena, for WriteStatistics' node count

	GramSy *Symbol // start symbol
	NsName string  // output namespace/module prefix, possibly dotted
	SrcName string // grammar source file name, for #line directives

	SemDeclPos *Position // semantic-declarations prologue

	EmitLines bool // inject #line directives into copied action text
	CheckEOF  bool // emit an EOF Expect after the start symbol

	AllSyncSets *TerminalSet // union of every sync node's set; filled in after parsing by package sets
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{Literals: make(map[string]*Symbol)}
}

// NewNode allocates a node into the table's arena (so WriteStatistics
// can report a node count) and returns it.
func (t *Table) NewNode(kind NodeKind) *Node {
	n := &Node{Kind: kind}
	t.Nodes = append(t.Nodes, n)
	return n
}

// FindTerminal returns the terminal with the given declared name (for
// the quote-delimited literal form, Name includes the quotes), or nil.
func (t *Table) FindTerminal(name string) *Symbol {
	for _, s := range t.Terminals {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindNonterminal returns the nonterminal with the given name, or nil.
func (t *Table) FindNonterminal(name string) *Symbol {
	for _, s := range t.Nonterminals {
		if s.Name == name {
			return s
		}
	}
	return nil
}
