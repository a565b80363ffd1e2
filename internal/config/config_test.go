package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestFindWalksUpToAncestor(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[check]\n")

	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	path, ok, err := Find(nested)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if !ok {
		t.Fatalf("Find did not locate checker.toml above %s", nested)
	}
	want, _ := filepath.Abs(filepath.Join(root, FileName))
	if path != want {
		t.Fatalf("Find path = %q, want %q", path, want)
	}
}

func TestFindReportsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Find(dir)
	if err != nil {
		t.Fatalf("Find returned error: %v", err)
	}
	if ok {
		t.Fatalf("Find unexpectedly located a manifest in an empty tree")
	}
}

func TestLoadDecodesCheckTable(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[check]
strict_null_checks = true
no_implicit_any = true
max_recursion_depth = 64

[output]
format = "json"

[libs]
files = ["lib.es5.ts"]
`)

	manifest, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !ok {
		t.Fatalf("Load did not find the manifest it just wrote")
	}
	if !manifest.Config.Check.StrictNullChecks {
		t.Fatalf("StrictNullChecks = false, want true")
	}
	if manifest.Config.Check.MaxRecursionDepth != 64 {
		t.Fatalf("MaxRecursionDepth = %d, want 64", manifest.Config.Check.MaxRecursionDepth)
	}
	if manifest.Config.Output.Format != "json" {
		t.Fatalf("Output.Format = %q, want json", manifest.Config.Output.Format)
	}
	if len(manifest.Config.Libs.Files) != 1 || manifest.Config.Libs.Files[0] != "lib.es5.ts" {
		t.Fatalf("Libs.Files = %v, want [lib.es5.ts]", manifest.Config.Libs.Files)
	}

	opts := manifest.Config.Check.ToOptions()
	if !opts.StrictNullChecks || !opts.NoImplicitAny {
		t.Fatalf("ToOptions did not carry flags through: %+v", opts)
	}
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[output]\nformat = \"xml\"\n")

	if _, _, err := Load(dir); err == nil {
		t.Fatalf("Load accepted an invalid [output].format value")
	}
}

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	manifest, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error for a directory with no manifest: %v", err)
	}
	if ok || manifest != nil {
		t.Fatalf("Load reported a manifest where none exists")
	}
}
