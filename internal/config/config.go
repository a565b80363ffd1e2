// Package config loads checker.toml, the project-level configuration file
// this module's CLI reads the way the teacher's cmd/surge reads surge.toml:
// a small declarative file naming which checks to enable and how
// diagnostics should be reported, discovered by walking up from the current
// directory rather than requiring an explicit flag on every invocation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"surge/internal/checker"
)

// FileName is the manifest name Find looks for, the way the teacher's
// project package looks for "surge.toml".
const FileName = "checker.toml"

// Manifest is a located and parsed checker.toml: its path, the directory it
// lives in (the project root checked file paths are resolved relative to),
// and its decoded contents.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is checker.toml's decoded shape.
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
	Libs   LibsConfig   `toml:"libs"`
}

// CheckConfig mirrors checker.Options field-for-field so checker.toml's
// [check] table can configure a CheckProgram run without the CLI needing to
// know each option's name twice.
type CheckConfig struct {
	StrictNullChecks    bool `toml:"strict_null_checks"`
	NoImplicitAny       bool `toml:"no_implicit_any"`
	StrictFunctionTypes bool `toml:"strict_function_types"`
	SoundMode           bool `toml:"sound_mode"`
	MaxRecursionDepth   int  `toml:"max_recursion_depth"`
	MaxDiagnostics      int  `toml:"max_diagnostics"`
}

// ToOptions converts the decoded [check] table into checker.Options.
func (c CheckConfig) ToOptions() checker.Options {
	return checker.Options{
		StrictNullChecks:    c.StrictNullChecks,
		NoImplicitAny:       c.NoImplicitAny,
		StrictFunctionTypes: c.StrictFunctionTypes,
		SoundMode:           c.SoundMode,
		MaxRecursionDepth:   c.MaxRecursionDepth,
		MaxDiagnostics:      c.MaxDiagnostics,
	}
}

// OutputConfig is checker.toml's [output] table: how internal/diagfmt
// should render the merged diagnostic bag.
type OutputConfig struct {
	// Format is one of "pretty", "sarif", "json"; empty defaults to
	// "pretty" the way a dumb terminal still gets readable output.
	Format string `toml:"format"`
	// Color forces ANSI color on/off; when unset the CLI decides based on
	// golang.org/x/term.IsTerminal the way cmd/surge's own output path does.
	Color *bool `toml:"color"`
}

// LibsConfig is checker.toml's [libs] table: which ambient lib files
// internal/libs.Load should bind, in dependency order, before any user file
// is checked.
type LibsConfig struct {
	// Files lists lib file paths relative to Manifest.Root, in the order
	// they must be bound (a later entry may reference an earlier one's
	// declarations).
	Files []string `toml:"files"`
}

// Find walks up from startDir looking for checker.toml, the same upward
// directory search the teacher's project.FindSurgeToml does for surge.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("config: resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes checker.toml starting from startDir, or returns
// ok=false (no error) when none exists — the CLI falls back to built-in
// defaults in that case rather than failing.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := decode(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func decode(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Output.Format != "" {
		switch strings.ToLower(cfg.Output.Format) {
		case "pretty", "sarif", "json":
		default:
			return Config{}, fmt.Errorf("%s: [output].format must be one of pretty, sarif, json (got %q)", path, cfg.Output.Format)
		}
	}
	return cfg, nil
}
