package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/hayeah/amc/internal/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		full := filepath.Join(dir, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
}

func TestOutRunner(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTree(t, dir, map[string]string{
		"a.rs":     "alpha",
		"b.txt":    "beta",
		"sub/c.rs": "gamma",
		".amc.toml": `
delimiter = "==="
extensions = ["rs"]
`,
	})

	runner := NewOutRunner(OutCmd{
		Dir:    dir,
		Config: filepath.Join(dir, ".amc.toml"),
	}, discardLogger())
	var buf bytes.Buffer
	runner.Output = &buf

	err := runner.Run()
	assert.NoError(err)

	out := buf.String()
	assert.Contains(out, "===\nFile: a.rs\n")
	assert.Contains(out, "alpha")
	assert.Contains(out, "File: "+filepath.Join("sub", "c.rs"))
	assert.Contains(out, "gamma")
	assert.NotContains(out, "b.txt")
	assert.NotContains(out, "beta")
	// outside a repository, git metadata degrades to unknown
	assert.Contains(out, "Last commit: unknown")
}

func TestOutRunnerExcludedFolders(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTree(t, dir, map[string]string{
		"src/main.rs":       "fn main() {}",
		"target/gen.rs":     "generated",
		"docs/target/ex.rs": "nested",
		".amc.toml": `
delimiter = "---"
extensions = ["rs"]
excluded_folders = ["target"]
`,
	})

	runner := NewOutRunner(OutCmd{
		Dir:    dir,
		Config: filepath.Join(dir, ".amc.toml"),
	}, discardLogger())
	var buf bytes.Buffer
	runner.Output = &buf

	err := runner.Run()
	assert.NoError(err)

	out := buf.String()
	assert.Contains(out, "File: "+filepath.Join("src", "main.rs"))
	assert.NotContains(out, "gen.rs")
	assert.NotContains(out, "ex.rs")
}

func TestOutRunnerDefaultConfig(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTree(t, dir, map[string]string{
		"only.rs": "default extensions include rs",
	})

	runner := NewOutRunner(OutCmd{
		Dir:    dir,
		Config: filepath.Join(dir, "no-such-config.toml"),
	}, discardLogger())
	var buf bytes.Buffer
	runner.Output = &buf

	err := runner.Run()
	assert.NoError(err)
	assert.Contains(buf.String(), "File: only.rs")
	assert.Contains(buf.String(), "---\n")
}

func TestOutRunnerBadConfig(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeTree(t, dir, map[string]string{
		"broken.toml": "delimiter = [oops",
	})

	runner := NewOutRunner(OutCmd{
		Dir:    dir,
		Config: filepath.Join(dir, "broken.toml"),
	}, discardLogger())
	var buf bytes.Buffer
	runner.Output = &buf

	err := runner.Run()
	assert.Error(err)
}
