// Package scan walks a source tree and hands the pipeline a flat list of
// readable source files. Filtering (extensions, ignored directories, test
// files) happens here so extraction never has to.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SourceFile is one file handed to extraction: its path, its path relative
// to the scanned root, and its full text.
type SourceFile struct {
	Path    string
	RelPath string
	Content string
}

// Options control which files a walk yields.
type Options struct {
	Extensions     []string // kept extensions, e.g. ".ts"
	IgnoreDirs     []string // directory names skipped wholesale
	IgnoreSuffixes []string // file name suffixes skipped, e.g. ".spec.ts"
	OnlyNames      []string // when set, only these exact base names are kept
}

// DefaultOptions matches the conventions of a TypeScript two-tier project.
func DefaultOptions() Options {
	return Options{
		Extensions:     []string{".ts", ".tsx", ".js", ".jsx"},
		IgnoreDirs:     []string{"node_modules", ".next", "dist", "build", ".git"},
		IgnoreSuffixes: []string{".spec.ts", ".test.ts", ".spec.tsx", ".test.tsx", ".d.ts"},
	}
}

// Walk reads every matching file under root. Any I/O fault aborts the walk:
// a run is all-or-nothing, there is no partial-success mode.
func Walk(root string, opts Options) ([]SourceFile, error) {
	var files []SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, ignored := range opts.IgnoreDirs {
				if d.Name() == ignored {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !keep(d.Name(), opts) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, SourceFile{Path: path, RelPath: rel, Content: string(content)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return files, nil
}

func keep(name string, opts Options) bool {
	for _, suffix := range opts.IgnoreSuffixes {
		if strings.HasSuffix(name, suffix) {
			return false
		}
	}
	if len(opts.OnlyNames) > 0 {
		for _, n := range opts.OnlyNames {
			if name == n {
				return true
			}
		}
		return false
	}
	for _, ext := range opts.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
