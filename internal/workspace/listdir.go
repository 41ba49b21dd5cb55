package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DirEntry is one entry in a directory listing. Name is relative to the
// listed root so nested entries read naturally.
type DirEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
	Size  int64  `json:"size,omitempty"`
}

// Listing is the structured result of ListDir.
type Listing struct {
	Path       string     `json:"path"`
	Entries    []DirEntry `json:"entries"`
	TotalFiles int        `json:"total_files"`
	TotalDirs  int        `json:"total_dirs"`
	Truncated  bool       `json:"was_truncated"`
}

// ListOptions control ListDir behavior.
type ListOptions struct {
	MaxDepth      int // 1 = immediate children only
	IncludeHidden bool
	MaxEntries    int
	Excludes      []string // glob patterns matched against entry names
}

// ListDir lists a directory, directories first then files, each group sorted
// by name. Recursion is depth-limited and the entry count capped; Truncated
// reports whether the cap cut the listing short.
func ListDir(path string, opts ListOptions) (*Listing, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 1
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = 200
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", abs)
	}

	l := &Listing{Path: abs}
	l.Truncated = listInto(l, abs, "", 1, opts)

	for _, e := range l.Entries {
		if e.IsDir {
			l.TotalDirs++
		} else {
			l.TotalFiles++
		}
	}
	return l, nil
}

// listInto appends one directory level (and recurses) into the listing.
// Returns true when the entry cap truncated the walk.
func listInto(l *Listing, dir, prefix string, depth int, opts ListOptions) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	for _, e := range entries {
		name := e.Name()
		if !opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if excluded(name, opts.Excludes) {
			continue
		}
		if len(l.Entries) >= opts.MaxEntries {
			return true
		}

		rel := name
		if prefix != "" {
			rel = prefix + "/" + name
		}
		entry := DirEntry{Name: rel, IsDir: e.IsDir()}
		if !e.IsDir() {
			if info, err := e.Info(); err == nil {
				entry.Size = info.Size()
			}
		}
		l.Entries = append(l.Entries, entry)

		if e.IsDir() && depth < opts.MaxDepth {
			if listInto(l, filepath.Join(dir, name), rel, depth+1, opts) {
				return true
			}
		}
	}
	return false
}

// excluded reports whether name matches any of the exclude globs.
func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
