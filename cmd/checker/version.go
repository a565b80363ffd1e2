package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"surge/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the checker version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := version.Version
		if version.GitCommit != "" {
			out += " (" + version.GitCommit + ")"
		}
		fmt.Println(out)
		return nil
	},
}
