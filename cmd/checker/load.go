package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"surge/internal/ast"
	"surge/internal/diag"
	"surge/internal/lexer"
	"surge/internal/parser"
	"surge/internal/source"
)

// sourceExt is the extension a checked source file carries; every path
// collectSourceFiles walks into must end in it, the same way the teacher's
// own file-collection walk only picks up ".sg" files.
const sourceExt = ".ts"

// collectSourceFiles expands each of roots (a file or a directory) into a
// sorted, deduplicated list of sourceExt files, recursing into
// directories the way the teacher's diagnose/format commands do.
func collectSourceFiles(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", root, err)
		}
		if !info.IsDir() {
			if filepath.Ext(root) == sourceExt {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if filepath.Ext(path) == sourceExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// parsedFile is one source file read, lexed and parsed into the shared
// arenas, plus the diagnostic bag raised while doing so.
type parsedFile struct {
	Path   string
	Source source.FileID
	ASTID  ast.FileID
	AST    *ast.File
	Bag    *diag.Bag
}

// parseSourceFile loads path into fs, lexes and parses it through builder,
// and returns the result alongside a bag holding any lex/parse
// diagnostics. Binding and type-checking diagnostics are not produced
// here — those come later, from checker.CheckProgram.
func parseSourceFile(ctx context.Context, fset *source.FileSet, builder *ast.Builder, path string, maxDiagnostics int) (parsedFile, error) {
	fileID, err := fset.Load(path)
	if err != nil {
		return parsedFile{}, fmt.Errorf("failed to load %q: %w", path, err)
	}
	f := fset.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(ctx, fset, lx, builder, parser.Options{Reporter: reporter})

	astFile := builder.Files.Get(res.File)
	return parsedFile{
		Path:   path,
		Source: fileID,
		ASTID:  res.File,
		AST:    astFile,
		Bag:    bag,
	}, nil
}
