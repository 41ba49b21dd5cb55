package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Symbol is one top-level declaration found in a source file.
type Symbol struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"` // func, method, type, class
	Line      int    `json:"line"` // 1-based
	Signature string `json:"signature"`
}

// Outline summarizes a source file's structure.
type Outline struct {
	Path       string   `json:"path"`
	Language   string   `json:"language"`
	TotalLines int      `json:"total_lines"`
	Symbols    []Symbol `json:"symbols"`
	Summary    string   `json:"summary"`
}

// outlineMaxFileSize guards against scanning generated megafiles.
const outlineMaxFileSize = 500_000

type symbolPattern struct {
	kind string
	re   *regexp.Regexp
}

// Declaration patterns per language. Line-anchored regex scanning keeps the
// tool language-agnostic; this is an overview aid, not a parser.
var languagePatterns = map[string][]symbolPattern{
	"go": {
		{"method", regexp.MustCompile(`^func\s+\([^)]+\)\s+(\w+)`)},
		{"func", regexp.MustCompile(`^func\s+(\w+)`)},
		{"type", regexp.MustCompile(`^type\s+(\w+)`)},
	},
	"python": {
		{"class", regexp.MustCompile(`^\s*class\s+(\w+)`)},
		{"func", regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)`)},
	},
	"javascript": {
		{"class", regexp.MustCompile(`^\s*(?:export\s+)?class\s+(\w+)`)},
		{"func", regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+(\w+)`)},
		{"func", regexp.MustCompile(`^\s*(?:export\s+)?const\s+(\w+)\s*=\s*(?:async\s+)?\(`)},
	},
}

var languageByExt = map[string]string{
	".go":  "go",
	".py":  "python",
	".pyi": "python",
	".js":  "javascript",
	".jsx": "javascript",
	".ts":  "javascript",
	".tsx": "javascript",
}

// OutlineFile scans a source file and returns its top-level declarations
// with line numbers.
func OutlineFile(path string) (*Outline, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory: %s", abs)
	}
	if info.Size() > outlineMaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes", info.Size())
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	lang := languageByExt[strings.ToLower(filepath.Ext(abs))]
	lines := strings.Split(string(data), "\n")

	o := &Outline{Path: abs, Language: lang, TotalLines: len(lines)}
	if lang == "" {
		o.Language = "unknown"
		o.Summary = "unsupported file type; no symbols extracted"
		return o, nil
	}

	patterns := languagePatterns[lang]
	for i, line := range lines {
		for _, p := range patterns {
			m := p.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			o.Symbols = append(o.Symbols, Symbol{
				Name:      m[1],
				Kind:      p.kind,
				Line:      i + 1,
				Signature: strings.TrimSpace(line),
			})
			break
		}
	}

	counts := map[string]int{}
	for _, s := range o.Symbols {
		counts[s.Kind]++
	}
	var parts []string
	for _, kind := range []string{"class", "type", "func", "method"} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s(s)", counts[kind], kind))
		}
	}
	if len(parts) == 0 {
		o.Summary = "no symbols found"
	} else {
		o.Summary = strings.Join(parts, ", ")
	}
	return o, nil
}
