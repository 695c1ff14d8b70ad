package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/cocogen/gramsrv"
)

var version = "dev"

func newLSPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lsp",
		Short:         "Run a language server diagnosing .atg grammar files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return gramsrv.New(version).RunStdio()
		},
	}
	return cmd
}
