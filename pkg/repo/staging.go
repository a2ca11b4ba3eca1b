package repo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// StagingEntry records the staged state of a single file.
type StagingEntry struct {
	Path     string      `json:"path"`
	BlobHash object.Hash `json:"blob_hash"`
	Mode     string      `json:"mode"`
	ModTime  int64       `json:"mod_time"`
	Size     int64       `json:"size"`
}

// Staging holds the full staging area (index) for a tack repository.
// Entries are keyed by repo-relative path, so a path can never be staged
// twice.
type Staging struct {
	Entries map[string]*StagingEntry `json:"entries"`
}

// indexPath returns the filesystem path to the staging index file.
func (r *Repo) indexPath() string {
	return filepath.Join(r.TackDir, "index")
}

// ReadStaging loads the staging area from .tack/index. If the file does not
// exist, an empty Staging is returned (no error).
func (r *Repo) ReadStaging() (*Staging, error) {
	data, err := os.ReadFile(r.indexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Staging{Entries: make(map[string]*StagingEntry)}, nil
		}
		return nil, fmt.Errorf("read staging: %w", err)
	}

	var stg Staging
	if err := json.Unmarshal(data, &stg); err != nil {
		return nil, fmt.Errorf("read staging: unmarshal: %w", err)
	}
	if stg.Entries == nil {
		stg.Entries = make(map[string]*StagingEntry)
	}
	return &stg, nil
}

// WriteStaging atomically writes the staging area to .tack/index.
func (r *Repo) WriteStaging(s *Staging) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("write staging: marshal: %w", err)
	}

	// Atomic write via temp file + rename.
	tmp, err := os.CreateTemp(r.TackDir, ".index-tmp-*")
	if err != nil {
		return fmt.Errorf("write staging: tmpfile: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write staging: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write staging: close: %w", err)
	}

	if err := os.Rename(tmpName, r.indexPath()); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write staging: rename: %w", err)
	}
	return nil
}

// Add stages the given paths, strictly: a missing path fails with
// ErrPathNotFound. Each file's content is written as a blob to the object
// store and a StagingEntry is upserted with the resulting hash and file
// metadata. Directories are staged recursively through the walk policy, so
// hidden-entry filtering is the same as for StageAll.
func (r *Repo) Add(paths []string) error {
	stg, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}

	policy := r.walkPolicy()

	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			return fmt.Errorf("add: resolve path %q: %w", p, err)
		}

		absPath := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
		info, err := os.Stat(absPath)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("add %q: %w", relPath, ErrPathNotFound)
			}
			return fmt.Errorf("add: stat %q: %w", relPath, err)
		}

		if info.IsDir() {
			files, err := r.WalkFiles(relPath, policy)
			if err != nil {
				return fmt.Errorf("add %q: %w", relPath, err)
			}
			for _, f := range files {
				if err := r.stageFile(stg, f); err != nil {
					return fmt.Errorf("add: %w", err)
				}
			}
			continue
		}

		if err := r.stageFile(stg, relPath); err != nil {
			return fmt.Errorf("add: %w", err)
		}
	}

	if err := r.WriteStaging(stg); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return nil
}

// StagePaths stages the given paths, silently skipping entries that do not
// exist or are not regular files. Bulk staging never aborts on a single bad
// entry. It returns the repo-relative paths that were actually staged.
func (r *Repo) StagePaths(paths []string) ([]string, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("stage paths: %w", err)
	}

	var staged []string
	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			continue
		}
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
		info, err := os.Stat(absPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := r.stageFile(stg, relPath); err != nil {
			return nil, fmt.Errorf("stage paths: %w", err)
		}
		staged = append(staged, relPath)
	}

	if err := r.WriteStaging(stg); err != nil {
		return nil, fmt.Errorf("stage paths: %w", err)
	}
	return staged, nil
}

// StageAll walks the whole working tree with the configured walk policy and
// ignore rules and stages every admitted file.
func (r *Repo) StageAll() ([]string, error) {
	files, err := r.WalkFiles("", r.walkPolicy())
	if err != nil {
		return nil, fmt.Errorf("stage all: %w", err)
	}
	return r.StagePaths(files)
}

// Unstage removes the given paths from the staging area. Paths that are not
// staged are silently skipped; callers may unstage unrelated paths in bulk.
func (r *Repo) Unstage(paths []string) error {
	stg, err := r.ReadStaging()
	if err != nil {
		return fmt.Errorf("unstage: %w", err)
	}

	for _, p := range paths {
		relPath, err := r.repoRelPath(p)
		if err != nil {
			continue
		}
		delete(stg.Entries, relPath)
	}

	if err := r.WriteStaging(stg); err != nil {
		return fmt.Errorf("unstage: %w", err)
	}
	return nil
}

// ClearStaging empties the staging area. Called after a successful commit.
func (r *Repo) ClearStaging() error {
	if err := r.WriteStaging(&Staging{Entries: make(map[string]*StagingEntry)}); err != nil {
		return fmt.Errorf("clear staging: %w", err)
	}
	return nil
}

// stageFile writes the blob for a single regular file and upserts its
// staging entry. The caller is responsible for flushing the staging area.
func (r *Repo) stageFile(stg *Staging, relPath string) error {
	absPath := filepath.Join(r.RootDir, filepath.FromSlash(relPath))
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %q: %w", relPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %q: %w", relPath, err)
	}

	blobHash, err := r.Store.WriteBlob(&object.Blob{Data: content})
	if err != nil {
		return fmt.Errorf("write blob %q: %w", relPath, err)
	}

	stg.Entries[relPath] = &StagingEntry{
		Path:     relPath,
		BlobHash: blobHash,
		Mode:     modeFromFileInfo(info),
		ModTime:  info.ModTime().UnixNano(),
		Size:     info.Size(),
	}
	return nil
}

// repoRelPath converts a path (absolute, or relative to CWD) into a path
// relative to the repository root. If the path is already relative and does
// not resolve inside the repo root, it is assumed to already be
// repo-relative.
func (r *Repo) repoRelPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(r.RootDir, p)
		if err != nil {
			return "", fmt.Errorf("cannot make %q relative to %q: %w", p, r.RootDir, err)
		}
		return filepath.ToSlash(rel), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	abs := filepath.Join(cwd, p)
	rel, err := filepath.Rel(r.RootDir, abs)
	if err != nil {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	// If the relative path starts with "..", p is outside the repo. In that
	// case, treat the original p as already repo-relative.
	if len(rel) >= 2 && rel[:2] == ".." {
		return filepath.ToSlash(filepath.Clean(p)), nil
	}

	return filepath.ToSlash(rel), nil
}
