package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a surgeon configuration from the given YAML file
// path. After parsing, it fills in defaults for values the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a config in standard locations and loads the
// first one found. Search order: ./surgeon.yaml, ~/.surgeon/config.yaml.
// A missing config is not an error; the defaults apply.
func LoadDefault() (*Config, error) {
	candidates := []string{"surgeon.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".surgeon", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := &Config{}
	applyDefaults(cfg)
	return cfg, nil
}

// Default locations and values. Backup and reject suffixes follow the
// conventional .bak/.rej sidecar names.
const (
	DefaultMaxFileSize   = 1_000_000
	DefaultMinConfidence = 0.70
	DefaultBackupSuffix  = ".bak"
	DefaultRejectSuffix  = ".rej"
	DefaultTestCommand   = "go test ./..."
	DefaultTestTimeout   = "2m"
)

func applyDefaults(cfg *Config) {
	if cfg.Edit.MaxFileSize == 0 {
		cfg.Edit.MaxFileSize = DefaultMaxFileSize
	}
	if cfg.Edit.MinConfidence == 0 {
		cfg.Edit.MinConfidence = DefaultMinConfidence
	}
	if cfg.Edit.BackupSuffix == "" {
		cfg.Edit.BackupSuffix = DefaultBackupSuffix
	}
	if cfg.Edit.RejectSuffix == "" {
		cfg.Edit.RejectSuffix = DefaultRejectSuffix
	}
	if cfg.Test.Command == "" {
		cfg.Test.Command = DefaultTestCommand
	}
	if cfg.Test.Timeout == "" {
		cfg.Test.Timeout = DefaultTestTimeout
	}
	if cfg.Excludes == nil {
		cfg.Excludes = []string{".git", "node_modules", "vendor", "__pycache__", ".venv", "*.bak", "*.rej"}
	}
}

// JournalPath resolves the journal location, defaulting to
// ~/.surgeon/surgeon.db and creating the directory if needed.
func (c *Config) JournalPath() (string, error) {
	if c.Journal.Path != "" {
		return c.Journal.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	dir := filepath.Join(home, ".surgeon")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	return filepath.Join(dir, "surgeon.db"), nil
}
