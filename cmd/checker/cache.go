package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"surge/internal/checker"
	"surge/internal/source"
)

// saveCaches persists each checked file's incremental type cache under
// cacheDir, named by the hex of the file's content hash so a later run over
// byte-identical source can find and validate it via
// CheckerState.LoadCache.
func saveCaches(results []*checker.ProgramResult, fset *source.FileSet, cacheDir string) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("cache-dir: %w", err)
	}
	for _, res := range results {
		if res.State == nil {
			continue
		}
		f := fset.Get(res.File.Source)
		if f == nil {
			continue
		}
		path := filepath.Join(cacheDir, hex.EncodeToString(f.Hash[:])+".cache")
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("cache-dir: %w", err)
		}
		err = res.State.SaveCache(out, f.Hash)
		closeErr := out.Close()
		if err != nil {
			return fmt.Errorf("saving cache for %s: %w", f.Path, err)
		}
		if closeErr != nil {
			return fmt.Errorf("saving cache for %s: %w", f.Path, closeErr)
		}
	}
	return nil
}
