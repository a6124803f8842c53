package amc

import (
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// CommitInfo is the HEAD commit of the repository enclosing a file.
type CommitInfo struct {
	// Hash is the commit id as a hex string.
	Hash string
	// Timestamp is the committer time in unix seconds.
	Timestamp int64
}

// HeadCommit discovers the git repository containing path and returns its
// HEAD commit. It fails if the path lies outside any repository or the
// repository has no commits yet.
func HeadCommit(path string) (CommitInfo, error) {
	dir := path
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		dir = filepath.Dir(path)
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to discover repository for %s: %w", path, err)
	}
	ref, err := repo.Head()
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return CommitInfo{}, fmt.Errorf("failed to load HEAD commit: %w", err)
	}

	return CommitInfo{
		Hash:      commit.Hash.String(),
		Timestamp: commit.Committer.When.Unix(),
	}, nil
}
