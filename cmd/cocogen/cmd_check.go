package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cocogen/diag"
	"github.com/dhamidi/cocogen/grammar"
	"github.com/dhamidi/cocogen/sets"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check <grammar.atg>",
		Short:         "Parse and verify a grammar file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open grammar: %w", err)
			}
			defer f.Close()

			sink := diag.NewList()

			tab, err := grammar.Parse(filename, f)
			if err != nil {
				sink.Report(diag.Diagnostic{Severity: diag.Error, Message: err.Error()})
			} else {
				c := sets.NewComputer(tab)
				c.Prepare()
				checkUnusedNonterminals(tab, sink)
				checkAlternationConflicts(tab, c, sink)
			}

			printer := diag.NewPrinter(cmd.OutOrStdout())
			printer.PrintAll(sink)

			if sink.HasErrors() {
				return fmt.Errorf("%s: grammar check failed", filename)
			}
			return nil
		},
	}

	return cmd
}

// checkUnusedNonterminals reports an error for a nonterminal with no production
// (declared implicitly by a reference but never defined) — a common
// typo that a silent graph build would otherwise hide.
func checkUnusedNonterminals(tab *grammar.Table, sink *diag.List) {
	for _, sym := range tab.Nonterminals {
		if sym.Graph == nil {
			sink.Report(diag.Diagnostic{
				Severity: diag.Error,
				Message:  fmt.Sprintf("nonterminal %q referenced but never defined", sym.Name),
			})
		}
	}
}

// checkAlternationConflicts walks every alternation in every
// nonterminal's graph and reports a pair of arms whose Expected0 sets
// overlap — the same overlap test gen.UseSwitch uses to decide between
// a switch and an if/else chain, here run unconditionally (UseSwitch
// only ever surfaces it as "not a switch", never as a diagnostic) so an
// LL(1) conflict is visible to the user instead of being silently
// resolved by first-arm-wins.
func checkAlternationConflicts(tab *grammar.Table, c *sets.Computer, sink *diag.List) {
	for _, nt := range tab.Nonterminals {
		walkAlternations(nt.Graph, nt, c, sink)
	}
}

func walkAlternations(p *grammar.Node, ctxSym *grammar.Symbol, c *sets.Computer, sink *diag.List) {
	for cur := p; cur != nil; cur = cur.Next {
		switch cur.Kind {
		case grammar.KindAlt:
			reportOverlaps(cur, ctxSym, c, sink)
			for arm := cur; arm != nil; arm = arm.Down {
				walkAlternations(arm.Sub, ctxSym, c, sink)
			}
		case grammar.KindIter, grammar.KindOpt:
			walkAlternations(cur.Sub, ctxSym, c, sink)
		}
		if cur.Up {
			break
		}
	}
}

func reportOverlaps(alt *grammar.Node, ctxSym *grammar.Symbol, c *sets.Computer, sink *diag.List) {
	i := 0
	for a := alt; a != nil; a = a.Down {
		sa := c.Expected0(a.Sub, ctxSym)
		j := i
		for b := a.Down; b != nil; b = b.Down {
			j++
			sb := c.Expected0(b.Sub, ctxSym)
			if sa.Overlaps(sb) {
				sink.Report(diag.Diagnostic{
					Severity: diag.Warning,
					Message: fmt.Sprintf(
						"%s: alternatives %d and %d overlap — not LL(1)",
						ctxSym.Name, i, j),
				})
			}
		}
		i++
	}
}
