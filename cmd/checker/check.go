package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"surge/internal/ast"
	"surge/internal/checker"
	"surge/internal/config"
	"surge/internal/diag"
	"surge/internal/diagfmt"
	"surge/internal/libs"
	"surge/internal/source"
	"surge/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.ts|directory>...",
	Short: "Type-check one or more TypeScript-flavored source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "output format (pretty|json|sarif), overrides checker.toml's [output].format")
	checkCmd.Flags().Bool("strict-null-checks", false, "enable strict null checks")
	checkCmd.Flags().Bool("no-implicit-any", false, "report implicit any")
	checkCmd.Flags().Bool("strict-function-types", false, "enable contravariant function parameter checks")
	checkCmd.Flags().Bool("sound-mode", false, "enable the stricter-than-tsc TS9xxx diagnostics")
	checkCmd.Flags().String("cache-dir", "", "directory to persist per-file incremental type caches (msgpack, keyed by content hash)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	manifest, _, err := config.Load(".")
	if err != nil {
		return err
	}

	opts, format, err := resolveCheckOptions(cmd, manifest)
	if err != nil {
		return err
	}

	paths, err := collectSourceFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no %s files found in %v", sourceExt, args)
	}

	strings := source.NewInterner()
	fset := source.NewFileSet()
	builder := ast.NewBuilder(ast.Hints{}, strings)

	var parseBags []*diag.Bag

	var libUnifier *libs.Unifier
	if manifest != nil && len(manifest.Config.Libs.Files) > 0 {
		libUnifier, err = loadLibs(ctx, fset, builder, strings, manifest, opts.maxDiagnosticsFlag)
		if err != nil {
			return err
		}
	}

	files := make([]checker.ProgramFile, 0, len(paths))
	for _, p := range paths {
		pf, err := parseSourceFile(ctx, fset, builder, p, opts.maxDiagnosticsFlag)
		if err != nil {
			return err
		}
		parseBags = append(parseBags, pf.Bag)
		files = append(files, checker.ProgramFile{Source: pf.Source, ASTID: pf.ASTID, AST: pf.AST})
	}

	var results []*checker.ProgramResult
	var checkBag *diag.Bag
	if libUnifier != nil {
		results, checkBag, err = checker.CheckProgram(ctx, strings, builder, files, libUnifier.Binder, libUnifier.Scope, opts.Options)
	} else {
		results, checkBag, err = checker.CheckProgram(ctx, strings, builder, files, nil, 0, opts.Options)
	}
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}

	if cacheDir, _ := cmd.Flags().GetString("cache-dir"); cacheDir != "" {
		if err := saveCaches(results, fset, cacheDir); err != nil {
			return err
		}
	}

	merged := diag.NewBag(0)
	for _, b := range parseBags {
		merged.Merge(b)
	}
	merged.Merge(checkBag)
	merged.Sort()

	if err := emit(cmd, merged, fset, format); err != nil {
		return err
	}

	if merged.HasErrors() {
		os.Exit(1)
	}
	return nil
}

// checkOptions bundles the resolved checker.Options plus the CLI-only
// knobs (diagnostic cap, output format) that don't belong on
// checker.Options itself.
type checkOptions struct {
	checker.Options
	maxDiagnosticsFlag int
}

func resolveCheckOptions(cmd *cobra.Command, manifest *config.Manifest) (checkOptions, string, error) {
	opts := checker.Options{}
	format := ""
	if manifest != nil {
		opts = manifest.Config.Check.ToOptions()
		format = manifest.Config.Output.Format
	}

	if v, _ := cmd.Flags().GetBool("strict-null-checks"); v {
		opts.StrictNullChecks = true
	}
	if v, _ := cmd.Flags().GetBool("no-implicit-any"); v {
		opts.NoImplicitAny = true
	}
	if v, _ := cmd.Flags().GetBool("strict-function-types"); v {
		opts.StrictFunctionTypes = true
	}
	if v, _ := cmd.Flags().GetBool("sound-mode"); v {
		opts.SoundMode = true
	}

	maxDiag, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return checkOptions{}, "", fmt.Errorf("failed to read max-diagnostics flag: %w", err)
	}
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = maxDiag
	}

	if v, _ := cmd.Flags().GetString("format"); v != "" {
		format = v
	}
	if format == "" {
		format = "pretty"
	}

	return checkOptions{Options: opts, maxDiagnosticsFlag: opts.MaxDiagnostics}, format, nil
}

func emit(cmd *cobra.Command, bag *diag.Bag, fset *source.FileSet, format string) error {
	switch format {
	case "pretty":
		color, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		diagfmt.Pretty(os.Stdout, bag, fset, diagfmt.PrettyOpts{
			Color:     color,
			Context:   2,
			ShowNotes: true,
		})
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fset, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case "sarif":
		return diagfmt.Sarif(os.Stdout, bag, fset, diagfmt.SarifRunMeta{
			ToolName:    "checker",
			ToolVersion: version.Version,
		})
	default:
		return fmt.Errorf("unknown --format %q (want pretty|json|sarif)", format)
	}
	return nil
}

func loadLibs(ctx context.Context, fset *source.FileSet, builder *ast.Builder, strings *source.Interner, manifest *config.Manifest, maxDiagnostics int) (*libs.Unifier, error) {
	libFiles := make([]libs.File, 0, len(manifest.Config.Libs.Files))
	for _, rel := range manifest.Config.Libs.Files {
		path := filepath.Join(manifest.Root, rel)
		pf, err := parseSourceFile(ctx, fset, builder, path, maxDiagnostics)
		if err != nil {
			return nil, fmt.Errorf("loading lib %q: %w", rel, err)
		}
		if pf.Bag.HasErrors() {
			return nil, fmt.Errorf("%s: lib file failed to parse", path)
		}
		libFiles = append(libFiles, libs.File{Name: rel, Source: pf.Source, ASTID: pf.ASTID, AST: pf.AST})
	}

	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}
	u, err := libs.Load(builder.Items, builder.Stmts, builder.Exprs, strings, reporter, libFiles)
	if err != nil {
		return nil, fmt.Errorf("libs: %w", err)
	}
	return u, nil
}
