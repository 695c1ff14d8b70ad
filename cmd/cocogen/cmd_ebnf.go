package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cocogen/gen"
)

func newEBNFCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:           "ebnf <grammar.atg>",
		Short:         "Dump a right-recursive EBNF rendering of a grammar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			tab, computer, buf, err := loadTable(filename)
			if err != nil {
				return err
			}

			g := gen.New(tab, buf, computer, gen.DefaultOptions())

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			g.WriteRREBNF(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "output file (default: stdout)")

	return cmd
}
