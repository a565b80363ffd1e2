package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"surge/internal/ast"
	"surge/internal/config"
	"surge/internal/source"
)

var libsCmd = &cobra.Command{
	Use:   "libs",
	Short: "Load the configured ambient lib files and report how many symbols they declare",
	Args:  cobra.NoArgs,
	RunE:  runLibs,
}

func runLibs(cmd *cobra.Command, _ []string) error {
	manifest, ok, err := config.Load(".")
	if err != nil {
		return err
	}
	if !ok || len(manifest.Config.Libs.Files) == 0 {
		fmt.Println("no libs configured ([libs].files is empty or checker.toml was not found)")
		return nil
	}

	strings := source.NewInterner()
	fset := source.NewFileSet()
	builder := ast.NewBuilder(ast.Hints{}, strings)

	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to read max-diagnostics flag: %w", err)
	}

	u, err := loadLibs(cmd.Context(), fset, builder, strings, manifest, maxDiag)
	if err != nil {
		return err
	}

	fmt.Printf("loaded %d lib file(s), %d symbol(s) declared\n", len(manifest.Config.Libs.Files), u.SymbolCount())
	for _, f := range manifest.Config.Libs.Files {
		fmt.Printf("  %s\n", f)
	}
	return nil
}
