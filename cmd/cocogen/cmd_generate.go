package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/cocogen/gen"
)

func newGenerateCmd() *cobra.Command {
	var outDir string
	var framePath string
	var namespace string
	var emitLines bool
	var checkEOF bool
	var parserWithAst bool
	var maxTerm int

	cmd := &cobra.Command{
		Use:           "generate <grammar.atg>",
		Short:         "Generate a recursive-descent parser from a grammar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			tab, computer, buf, err := loadTable(filename)
			if err != nil {
				return err
			}
			if namespace != "" {
				tab.NsName = namespace
			}

			opts := gen.DefaultOptions()
			opts.EmitLines = emitLines
			opts.CheckEOF = checkEOF
			opts.ParserWithAst = parserWithAst
			if maxTerm > 0 {
				opts.MaxTerm = maxTerm
			}

			g := gen.New(tab, buf, computer, opts)

			base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
			if outDir == "" {
				outDir = "."
			}
			headerPath := filepath.Join(outDir, base+"Parser.h")
			sourcePath := filepath.Join(outDir, base+"Parser.cpp")

			headerFile, err := os.Create(headerPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", headerPath, err)
			}
			defer headerFile.Close()

			sourceFile, err := os.Create(sourcePath)
			if err != nil {
				return fmt.Errorf("create %s: %w", sourcePath, err)
			}
			defer sourceFile.Close()

			if err := g.WriteParser(headerFile, sourceFile, framePath); err != nil {
				return fmt.Errorf("write parser: %w", err)
			}

			g.WriteStatistics(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: current directory)")
	cmd.Flags().StringVar(&framePath, "frame", "", "frame template file (default: embedded Parser.frame)")
	cmd.Flags().StringVar(&namespace, "namespace", "", "output namespace/module prefix")
	cmd.Flags().BoolVar(&emitLines, "emit-lines", false, "inject #line directives into copied action text")
	cmd.Flags().BoolVar(&checkEOF, "check-eof", false, "emit an EOF Expect after the start symbol")
	cmd.Flags().BoolVar(&parserWithAst, "with-ast", false, "gate AST hook emission")
	cmd.Flags().IntVar(&maxTerm, "max-term", 0, "threshold above which condition sets use the StartOf table (default 3)")

	return cmd
}
