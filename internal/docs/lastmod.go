package docs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// maxHistoryCommits bounds the history walk for repositories with long logs.
const maxHistoryCommits = 2000

// gitLastModified returns, for each absolute path, the committer time of the
// most recent commit that changed it. Paths never committed are absent.
func gitLastModified(dir string, paths []string) (map[string]time.Time, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	pending := make(map[string]string, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			continue
		}
		pending[filepath.ToSlash(rel)] = p
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	defer iter.Close()

	out := make(map[string]time.Time, len(paths))
	count := 0
	err = iter.ForEach(func(c *object.Commit) error {
		tree, err := c.Tree()
		if err != nil {
			return err
		}
		var parent *object.Tree
		if c.NumParents() > 0 {
			if p, err := c.Parent(0); err == nil {
				parent, _ = p.Tree()
			}
		}
		for rel, abs := range pending {
			cur := entryHash(tree, rel)
			if cur.IsZero() {
				continue
			}
			if cur != entryHash(parent, rel) {
				out[abs] = c.Committer.When
				delete(pending, rel)
			}
		}
		count++
		if len(pending) == 0 || count >= maxHistoryCommits {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return out, err
	}
	return out, nil
}

func entryHash(tree *object.Tree, path string) plumbing.Hash {
	if tree == nil {
		return plumbing.ZeroHash
	}
	e, err := tree.FindEntry(path)
	if err != nil {
		return plumbing.ZeroHash
	}
	return e.Hash
}

func fileModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
