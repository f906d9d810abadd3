// Package sources resolves glob patterns into the list of files handed to
// the extractor.
package sources

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

type matcher struct {
	globs []glob.Glob
}

func (m matcher) match(rel string) bool {
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (m *matcher) add(pattern string) error {
	pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	m.globs = append(m.globs, g)
	// "**/" also matches zero directories, both as a prefix and mid-pattern.
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		if err := m.add(rest); err != nil {
			return err
		}
	}
	for i := strings.Index(pattern, "/**/"); i >= 0; {
		if err := m.add(pattern[:i] + pattern[i+3:]); err != nil {
			return err
		}
		next := strings.Index(pattern[i+1:], "/**/")
		if next < 0 {
			break
		}
		i += next + 1
	}
	return nil
}

// Expand walks inputDir and returns the files matching at least one pattern
// and no "!"-prefixed pattern. Patterns are relative to inputDir, use "/" as
// separator and support "**". node_modules and dot directories are skipped.
// The result is sorted and joined with inputDir.
func Expand(inputDir string, patterns []string) ([]string, error) {
	if inputDir == "" {
		inputDir = "."
	}
	var include, exclude matcher
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		var err error
		if neg, ok := strings.CutPrefix(p, "!"); ok {
			err = exclude.add(neg)
		} else {
			err = include.add(p)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(include.globs) == 0 {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputDir && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if include.match(rel) && !exclude.match(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputDir, err)
	}
	sort.Strings(files)
	return files, nil
}
