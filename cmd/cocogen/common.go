package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/cocogen/grammar"
	"github.com/dhamidi/cocogen/sets"
)

// loadTable parses filename, runs First/Follow/Prepare over it, and
// returns the fully-set-computed table, the Computer answering the
// generator's set queries, and a fresh buffer positioned at 0 for
// CopySourcePart (spec.md §6: the source buffer's read position is
// saved at entry and restored at exit).
func loadTable(filename string) (*grammar.Table, *sets.Computer, *grammar.Buffer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	tab, err := grammar.Parse(filename, f)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("parse grammar: %w", err)
	}

	c := sets.NewComputer(tab)
	c.Prepare()

	f2, err := os.Open(filename)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reopen grammar: %w", err)
	}
	defer f2.Close()

	buf, err := grammar.NewBuffer(f2)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("buffer grammar: %w", err)
	}

	return tab, c, buf, nil
}
