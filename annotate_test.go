package amc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hayeah/amc/internal/assert"
)

func TestWriteFilesFraming(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "hello.rs")
	err := os.WriteFile(path, []byte("fn main() {}"), 0o644)
	assert.NoError(err)

	var buf bytes.Buffer
	annotator := NewAnnotator("---", &buf)
	annotator.gitInfo = func(string) (CommitInfo, error) {
		return CommitInfo{Hash: "abc123", Timestamp: 1700000000}, nil
	}

	err = annotator.WriteFiles([]FileRecord{
		{AbsolutePath: path, RelativePath: "hello.rs"},
	})
	assert.NoError(err)

	expected := "---\n" +
		"File: hello.rs\n" +
		"Last commit: abc123\n" +
		"Last update: 1700000000\n" +
		"---\n" +
		"fn main() {}\n\n"
	assert.Equal(expected, buf.String())
}

func TestWriteFilesUnknownGitInfo(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "a.rs")
	err := os.WriteFile(path, []byte("content"), 0o644)
	assert.NoError(err)

	var buf bytes.Buffer
	annotator := NewAnnotator("---", &buf)
	annotator.gitInfo = func(string) (CommitInfo, error) {
		return CommitInfo{}, errors.New("not a repository")
	}

	err = annotator.WriteFiles([]FileRecord{
		{AbsolutePath: path, RelativePath: "a.rs"},
	})
	assert.NoError(err)
	assert.Contains(buf.String(), "Last commit: unknown\n")
	assert.Contains(buf.String(), "Last update: unknown\n")
}

func TestWriteFilesSkipsBinary(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "blob.rs")
	err := os.WriteFile(path, bytes.Repeat([]byte{0x00, 0x01, 0xff}, 50), 0o644)
	assert.NoError(err)

	var buf bytes.Buffer
	annotator := NewAnnotator("---", &buf)
	annotator.gitInfo = func(string) (CommitInfo, error) {
		return CommitInfo{}, errors.New("no repo")
	}

	err = annotator.WriteFiles([]FileRecord{
		{AbsolutePath: path, RelativePath: "blob.rs"},
	})
	assert.NoError(err)
	assert.Empty(buf.String())
}

func TestWriteFilesSkipsMissing(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	present := filepath.Join(dir, "present.rs")
	err := os.WriteFile(present, []byte("here"), 0o644)
	assert.NoError(err)

	var buf bytes.Buffer
	annotator := NewAnnotator("---", &buf)
	annotator.gitInfo = func(string) (CommitInfo, error) {
		return CommitInfo{}, errors.New("no repo")
	}

	// A file deleted between walk and read is skipped, not fatal.
	err = annotator.WriteFiles([]FileRecord{
		{AbsolutePath: filepath.Join(dir, "gone.rs"), RelativePath: "gone.rs"},
		{AbsolutePath: present, RelativePath: "present.rs"},
	})
	assert.NoError(err)
	assert.NotContains(buf.String(), "gone.rs")
	assert.Contains(buf.String(), "File: present.rs")
}

func TestIsBinaryFile(t *testing.T) {
	assert := assert.New(t)

	assert.False(IsBinaryFile(nil))
	assert.False(IsBinaryFile([]byte("plain text\nwith lines\n")))
	assert.False(IsBinaryFile([]byte("unicode: héllo wörld")))
	assert.True(IsBinaryFile(bytes.Repeat([]byte{0x00, 0x01, 0x02}, 40)))
}
