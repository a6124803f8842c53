// Package ignore implements layered gitignore-style exclusion for directory
// walks: nested .gitignore files, the repository's info/exclude file, and the
// user's global and system exclude patterns.
package ignore

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignore encapsulates gitignore pattern matching for a single root directory.
type Ignore struct {
	matcher  gitignore.Matcher
	rootPath string
	logger   *slog.Logger
}

// NewIgnore creates an Ignore for the given root path. The root does not need
// to be a git repository; pattern sources that are absent or unreadable are
// skipped with a warning rather than failing construction. Pass a nil logger
// to discard diagnostics.
func NewIgnore(rootPath string, logger *slog.Logger) *Ignore {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var patterns []gitignore.Pattern

	// System and global (core.excludesFile) patterns resolve against the OS
	// root since the paths they name are absolute.
	rootFS := osfs.New("/")
	if ps, err := gitignore.LoadSystemPatterns(rootFS); err != nil {
		logger.Warn("failed to load system gitignore patterns", "error", err)
	} else {
		patterns = append(patterns, ps...)
	}
	if ps, err := gitignore.LoadGlobalPatterns(rootFS); err != nil {
		logger.Warn("failed to load global gitignore patterns", "error", err)
	} else {
		patterns = append(patterns, ps...)
	}

	// Nested .gitignore files plus .git/info/exclude, relative to the root.
	fsys := osfs.New(rootPath)
	if ps, err := gitignore.ReadPatterns(fsys, nil); err != nil {
		logger.Warn("failed to read gitignore patterns", "root", rootPath, "error", err)
	} else {
		patterns = append(patterns, ps...)
	}

	// The root .gitignore is also loaded explicitly, so its rules apply even
	// when the layered resolution above could not run.
	gitignorePath := filepath.Join(rootPath, ".gitignore")
	if ps, err := readIgnoreFile(gitignorePath); err != nil {
		logger.Warn("failed to add .gitignore file", "path", gitignorePath, "error", err)
	} else {
		patterns = append(patterns, ps...)
	}

	return &Ignore{
		matcher:  gitignore.NewMatcher(patterns),
		rootPath: rootPath,
		logger:   logger,
	}
}

// readIgnoreFile parses a single gitignore file into root-domain patterns.
// A missing file is not an error.
func readIgnoreFile(path string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, nil))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// IsIgnored checks if a path should be ignored according to the layered
// ignore rules.
func (ig *Ignore) IsIgnored(path string, isDir bool) (bool, error) {
	// Skip .git directory
	if isDir && filepath.Base(path) == ".git" {
		return true, nil
	}

	// Convert absolute path to a relative path for the matcher
	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil {
		return false, err
	}

	// Skip the root directory
	if relPath == "." {
		return false, nil
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return ig.matcher.Match(parts, isDir), nil
}

// WalkDir walks the file tree rooted at root, calling fn for each file or
// directory in the tree, including root, while respecting the layered ignore
// rules. Entries that cannot be read are skipped, not propagated as errors.
func (ig *Ignore) WalkDir(root string, fn func(path string, d os.DirEntry, isDir bool) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			ig.logger.Debug("skipping unreadable entry", "path", path, "error", err)
			return nil
		}

		isDir := d.IsDir()

		ignored, err := ig.IsIgnored(path, isDir)
		if err != nil {
			return err
		}

		if ignored {
			if isDir {
				return filepath.SkipDir
			}
			return nil
		}

		return fn(path, d, isDir)
	})
}
