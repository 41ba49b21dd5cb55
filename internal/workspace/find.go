package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileMatch is one hit from FindByName.
type FileMatch struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size,omitempty"`
}

// FindResult is the structured result of FindByName.
type FindResult struct {
	Pattern    string      `json:"pattern"`
	SearchPath string      `json:"search_path"`
	Matches    []FileMatch `json:"matches"`
	Truncated  bool        `json:"was_truncated"`
}

// FindOptions control FindByName behavior.
type FindOptions struct {
	MaxDepth      int    // directory depth below the root, default 10
	FileType      string // "file", "directory", or "any"
	IncludeHidden bool
	MaxResults    int
	Excludes      []string
}

// FindByName searches for files and directories whose names match a glob
// pattern. Patterns containing a path separator (or **) match against the
// path relative to the search root; bare patterns match the base name.
func FindByName(root, pattern string, opts FindOptions) (*FindResult, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required")
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 10
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 100
	}
	if opts.FileType == "" {
		opts.FileType = "any"
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}

	pathPattern := strings.ContainsAny(pattern, "/") || strings.Contains(pattern, "**")
	res := &FindResult{Pattern: pattern, SearchPath: abs}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep walking
		}
		if path == abs {
			return nil
		}
		rel, _ := filepath.Rel(abs, path)
		name := d.Name()

		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(name, opts.Excludes) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() && strings.Count(rel, string(filepath.Separator))+1 >= opts.MaxDepth {
			return filepath.SkipDir
		}

		target := name
		if pathPattern {
			target = filepath.ToSlash(rel)
		}
		ok, merr := doublestar.Match(pattern, target)
		if merr != nil {
			return fmt.Errorf("bad pattern %q: %w", pattern, merr)
		}
		if !ok {
			return nil
		}
		if opts.FileType == "file" && d.IsDir() {
			return nil
		}
		if opts.FileType == "directory" && !d.IsDir() {
			return nil
		}

		if len(res.Matches) >= opts.MaxResults {
			res.Truncated = true
			return filepath.SkipAll
		}
		m := FileMatch{Path: filepath.ToSlash(rel), IsDir: d.IsDir()}
		if !d.IsDir() {
			if info, err := d.Info(); err == nil {
				m.Size = info.Size()
			}
		}
		res.Matches = append(res.Matches, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
