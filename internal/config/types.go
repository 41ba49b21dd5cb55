package config

// Config is the top-level configuration structure parsed from surgeon YAML.
type Config struct {
	Edit     Edit     `yaml:"edit"`
	Journal  Journal  `yaml:"journal"`
	Test     Test     `yaml:"test"`
	Excludes []string `yaml:"excludes"`
}

// Edit holds the edit-engine settings.
type Edit struct {
	MaxFileSize   int64   `yaml:"max_file_size"`
	MinConfidence float64 `yaml:"min_confidence"`
	BackupSuffix  string  `yaml:"backup_suffix"`
	RejectSuffix  string  `yaml:"reject_suffix"`
}

// Journal configures the SQLite transaction journal.
type Journal struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// Test configures the test-runner tool.
type Test struct {
	Command string `yaml:"command"`
	Timeout string `yaml:"timeout"`
}
