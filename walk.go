// Package amc discovers, annotates, and concatenates source files. The
// discovery engine walks a directory tree once, applying gitignore rules, an
// excluded-folder list, and an extension allow-list, and returns the matched
// files with both absolute and root-relative paths.
package amc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hayeah/amc/ignore"
)

// ConfigFileName is the tool's own configuration artifact. It is never
// treated as content, regardless of the configured extensions.
const ConfigFileName = ".amc.toml"

// excludedFiles are reserved file names that never appear in walk results.
var excludedFiles = map[string]struct{}{
	ConfigFileName: {},
}

// ErrPathResolution indicates the walk root does not exist or could not be
// canonicalized. It is the only fatal walk error; check with errors.Is.
var ErrPathResolution = errors.New("failed to resolve directory path")

// FileRecord is the output unit of a walk: a matched file's absolute path
// paired with its path relative to the resolved scan root.
type FileRecord struct {
	AbsolutePath string
	RelativePath string
}

// FileWalker discovers files under a root directory. It matches regular
// files whose extension is in the allow-list, excluding anything under a
// folder whose name is in the excluded set and anything hidden by gitignore
// rules. The zero value is not usable; construct with NewFileWalker.
type FileWalker struct {
	// Logger receives walk diagnostics. Defaults to a discard logger.
	Logger *slog.Logger

	extensions      map[string]struct{}
	excludedFolders map[string]struct{}
}

// NewFileWalker creates a FileWalker for the given extension allow-list and
// excluded folder names. Extensions may be given with or without a leading
// dot ("rs" and ".rs" behave identically); matching is case-sensitive.
// Excluded folder names are bare directory names compared against path
// components, not globs.
func NewFileWalker(extensions, excludedFolders []string) *FileWalker {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.TrimPrefix(ext, ".")] = struct{}{}
	}
	folders := make(map[string]struct{}, len(excludedFolders))
	for _, name := range excludedFolders {
		folders[name] = struct{}{}
	}
	return &FileWalker{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		extensions:      exts,
		excludedFolders: folders,
	}
}

// Walk traverses the tree rooted at dir and returns the files that pass the
// filter chain. "." resolves to the current working directory; any other
// path must canonicalize to an existing location or Walk fails with
// ErrPathResolution. The result set is built fresh on every call.
func (w *FileWalker) Walk(dir string) ([]FileRecord, error) {
	base, err := resolveRoot(dir)
	if err != nil {
		return nil, err
	}

	w.Logger.Info("starting file walk", "dir", base)
	w.Logger.Info("looking for extensions", "extensions", w.extensionList())

	ig := ignore.NewIgnore(base, w.Logger)

	var records []FileRecord
	err = ig.WalkDir(base, func(path string, d os.DirEntry, isDir bool) error {
		if isDir {
			// Pruning excluded folders here is an optimization; the ancestry
			// check below keeps results correct either way.
			if path != base {
				if _, excluded := w.excludedFolders[d.Name()]; excluded {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if w.inExcludedFolder(base, path) {
			return nil
		}
		ok := w.isValidExtension(path)
		w.Logger.Debug("checking file", "path", path, "included", ok)
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			// Defensive: a matched file outside the root keeps its absolute
			// path rather than failing the walk.
			w.Logger.Warn("failed to derive relative path", "path", path, "error", err)
			rel = path
		}
		records = append(records, FileRecord{
			AbsolutePath: path,
			RelativePath: rel,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// resolveRoot canonicalizes the walk root to an absolute, symlink-resolved
// path. "." means the process working directory.
func resolveRoot(dir string) (string, error) {
	if dir == "." {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPathResolution, err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPathResolution, dir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrPathResolution, dir, err)
	}
	return resolved, nil
}

// inExcludedFolder reports whether any directory component between the scan
// root and the file matches an excluded folder name exactly. A folder named
// "target" is excluded at any depth; "targetx" is not a match.
func (w *FileWalker) inExcludedFolder(base, path string) bool {
	if len(w.excludedFolders) == 0 {
		return false
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		rel = path
	}
	parent := filepath.Dir(rel)
	if parent == "." {
		return false
	}
	for _, component := range strings.Split(parent, string(os.PathSeparator)) {
		if _, excluded := w.excludedFolders[component]; excluded {
			return true
		}
	}
	return false
}

// isValidExtension reports whether the file passes the fixed-name exclusion
// and the extension allow-list. Files without an extension never match.
func (w *FileWalker) isValidExtension(path string) bool {
	name := filepath.Base(path)
	if _, reserved := excludedFiles[name]; reserved {
		return false
	}
	ext := fileExt(name)
	if ext == "" {
		return false
	}
	_, ok := w.extensions[ext]
	return ok
}

// fileExt returns the extension without its dot, or "" if the name has no
// extension. Dotfiles like ".gitignore" have no extension.
func fileExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

func (w *FileWalker) extensionList() []string {
	exts := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		exts = append(exts, ext)
	}
	return exts
}
