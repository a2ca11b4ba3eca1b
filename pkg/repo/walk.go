package repo

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// WalkPolicy controls which working-tree entries a walk visits. It is the
// single filter applied to every recursive walk (StageAll, recursive Add,
// Status), so hidden-entry handling is consistent across call sites.
type WalkPolicy struct {
	// SkipHidden excludes entries whose name begins with a dot, at every
	// depth. The repository metadata directory is always excluded.
	SkipHidden bool
}

// walkPolicy returns the policy configured for this repository,
// defaulting to skipping hidden entries.
func (r *Repo) walkPolicy() WalkPolicy {
	cfg, err := r.ReadConfig()
	if err != nil {
		return WalkPolicy{SkipHidden: true}
	}
	return WalkPolicy{SkipHidden: cfg.Core.SkipHidden}
}

// WalkFiles walks the working tree below subdir (repo-relative, "" for the
// whole tree) and returns the repo-relative paths of all regular files
// admitted by the policy and the ignore rules. Paths use forward slashes
// and are sorted by the underlying directory traversal order.
func (r *Repo) WalkFiles(subdir string, policy WalkPolicy) ([]string, error) {
	ic := NewIgnoreChecker(r.RootDir)

	start := r.RootDir
	if subdir != "" {
		start = filepath.Join(r.RootDir, filepath.FromSlash(subdir))
	}

	var files []string
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(r.RootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if policy.SkipHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if ic.IsIgnored(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk files: %w", err)
	}
	return files, nil
}
