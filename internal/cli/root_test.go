package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand executes the root command with args and returns combined output.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// quietConfig points the global config flag at a journal-disabled config so
// tests never touch the real home directory.
func quietConfig(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "surgeon.yaml")
	if err := os.WriteFile(path, []byte("journal:\n  disabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	configFile = path
	t.Cleanup(func() { configFile = "" })
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "surgeon version") {
		t.Errorf("output = %q", out)
	}
}

func TestEditDryRunLeavesFileUntouched(t *testing.T) {
	quietConfig(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	original := "package main\n\nfunc main() {}\n"
	if err := os.WriteFile(target, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	batch := filepath.Join(dir, "batch.json")
	spec := `{"files": [{"path": "main.go", "edits": [{"search": "func main() {}", "replace": "func main() {\n\tprintln(\"hi\")\n}"}]}]}`
	if err := os.WriteFile(batch, []byte(spec), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "edit", batch, "--root", dir)
	if err != nil {
		t.Fatalf("edit: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"previewed"`) {
		t.Errorf("expected previewed state in output:\n%s", out)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != original {
		t.Error("dry run modified the file")
	}
}

func TestEditBadBatchFails(t *testing.T) {
	quietConfig(t)
	dir := t.TempDir()
	batch := filepath.Join(dir, "batch.json")
	if err := os.WriteFile(batch, []byte(`{"files": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := runCommand(t, "edit", batch, "--root", dir); err == nil {
		t.Error("expected error for empty batch")
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	quietConfig(t)
	out, err := runCommand(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("output = %q", out)
	}
}
