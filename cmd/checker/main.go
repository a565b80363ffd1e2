package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"surge/internal/config"
	"surge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "checker",
	Short: "A TypeScript-compatible semantic checker",
	Long:  "checker binds, type-checks and reports diagnostics for TypeScript-flavored source files.",
}

var (
	timeoutCancel context.CancelFunc
)

func main() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = applyTimeout
	rootCmd.PersistentPostRun = func(*cobra.Command, []string) {
		if timeoutCancel != nil {
			timeoutCancel()
		}
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(libsCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 2000, "maximum diagnostics to report per file")
	rootCmd.PersistentFlags().Int("timeout", 60, "command timeout in seconds")
	rootCmd.PersistentFlags().String("config", "", "path to checker.toml (not read: every subcommand discovers checker.toml by walking up from cwd)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal, the same isatty
// check cmd/surge's own output path uses to decide default coloring.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, out *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to read color flag: %w", err)
	}
	if !cmd.Root().PersistentFlags().Changed("color") {
		if manifest, ok, _ := config.Load("."); ok && manifest.Config.Output.Color != nil {
			return *manifest.Config.Output.Color, nil
		}
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(out), nil
	default:
		return false, fmt.Errorf("unknown --color value %q (want on|off|auto)", mode)
	}
}

func applyTimeout(cmd *cobra.Command, _ []string) error {
	secs, err := cmd.Root().PersistentFlags().GetInt("timeout")
	if err != nil {
		return fmt.Errorf("failed to read timeout flag: %w", err)
	}
	if secs <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(secs)*time.Second)
	timeoutCancel = cancel
	cmd.SetContext(ctx)
	return nil
}
