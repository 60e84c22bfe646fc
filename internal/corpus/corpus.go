// Package corpus loads tokenizer training text from the filesystem.
// A corpus path may be a single file, read as-is, or a directory,
// walked recursively with .gitignore rules applied and binary files
// skipped. Directory contents are concatenated in walk order, which
// is lexical and therefore stable across runs.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Result describes a loaded corpus.
type Result struct {
	Text  string
	Files int
}

// Load reads the corpus at path. Errors on unreadable individual
// files inside a directory are skipped; an empty directory is not an
// error, it just yields an empty corpus.
func Load(path string) (Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("corpus: stat %s: %w", path, err)
	}

	if !info.IsDir() {
		content, err := os.ReadFile(path)
		if err != nil {
			return Result{}, fmt.Errorf("corpus: read %s: %w", path, err)
		}
		return Result{Text: string(content), Files: 1}, nil
	}

	return loadDir(path)
}

func loadDir(root string) (Result, error) {
	ignore := NewIgnoreMatcher(root)

	var sb strings.Builder
	files := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			if HardIgnore(d.Name()) {
				return filepath.SkipDir
			}
			if ignore.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if SkipFile(d.Name()) || ignore.Match(rel) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		if !utf8.Valid(content) {
			return nil // binary file
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(content)
		files++
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("corpus: walk %s: %w", root, err)
	}

	return Result{Text: sb.String(), Files: files}, nil
}
