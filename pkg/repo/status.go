package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// FileStatus represents the state of a file in the working tree or index.
type FileStatus int

const (
	StatusClean     FileStatus = iota // file matches between compared areas
	StatusNew                         // in staging, not in HEAD tree
	StatusModified                    // in staging, different from HEAD
	StatusDeleted                     // in HEAD but not in staging (or on disk but not in staging)
	StatusUntracked                   // in working dir but not in staging
	StatusDirty                       // staged but working copy differs from staged
)

// StatusEntry records the status of a single file.
type StatusEntry struct {
	Path        string     // repo-relative path
	IndexStatus FileStatus // staging vs HEAD comparison
	WorkStatus  FileStatus // working tree vs staging comparison
}

type headTreeState struct {
	BlobHash object.Hash
	Mode     string
}

// Status computes the working tree status for the repository.
//
// Algorithm:
//  1. Read the staging index.
//  2. Walk the working directory with the walk policy and ignore rules.
//  3. Compare working tree files against staging entries.
//  4. Compare staging entries against the HEAD tree (if any).
//  5. Return a sorted list of status entries.
func (r *Repo) Status() ([]StatusEntry, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	files, err := r.WalkFiles("", r.walkPolicy())
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}
	workFiles := make(map[string]bool, len(files))
	for _, f := range files {
		workFiles[f] = true
	}

	result := make(map[string]*StatusEntry)

	// --- Working tree vs staging comparison ---

	for path := range workFiles {
		se, inStaging := stg.Entries[path]
		if !inStaging {
			result[path] = &StatusEntry{
				Path:        path,
				IndexStatus: StatusUntracked,
				WorkStatus:  StatusUntracked,
			}
			continue
		}

		// In staging: compare metadata first, content hash only when the
		// stat data no longer matches.
		absPath := filepath.Join(r.RootDir, filepath.FromSlash(path))
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("status: stat %q: %w", path, err)
		}

		workStatus := StatusClean
		if !stagingStatMatches(se, info) {
			content, err := os.ReadFile(absPath)
			if err != nil {
				return nil, fmt.Errorf("status: read %q: %w", path, err)
			}
			workHash := object.HashObject(object.TypeBlob, content)
			if workHash != se.BlobHash || modeFromFileInfo(info) != normalizeFileMode(se.Mode) {
				workStatus = StatusDirty
			}
		}

		result[path] = &StatusEntry{Path: path, WorkStatus: workStatus}
	}

	// Staged entries missing from disk are deletions in the working tree.
	for path := range stg.Entries {
		if !workFiles[path] {
			entry, exists := result[path]
			if !exists {
				entry = &StatusEntry{Path: path}
				result[path] = entry
			}
			entry.WorkStatus = StatusDeleted
		}
	}

	// --- Staging vs HEAD comparison ---

	headEntries := r.headTreeEntries()

	for path, se := range stg.Entries {
		entry, exists := result[path]
		if !exists {
			entry = &StatusEntry{Path: path}
			result[path] = entry
		}

		headState, inHead := headEntries[path]
		switch {
		case !inHead:
			entry.IndexStatus = StatusNew
		case se.BlobHash != headState.BlobHash || normalizeFileMode(se.Mode) != normalizeFileMode(headState.Mode):
			entry.IndexStatus = StatusModified
		default:
			entry.IndexStatus = StatusClean
		}
	}

	// HEAD entries missing from staging are deletions in the index.
	for path := range headEntries {
		if _, inStaging := stg.Entries[path]; !inStaging {
			entry, exists := result[path]
			if !exists {
				entry = &StatusEntry{Path: path}
				result[path] = entry
			}
			entry.IndexStatus = StatusDeleted
		}
	}

	entries := make([]StatusEntry, 0, len(result))
	for _, e := range result {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})

	return entries, nil
}

// stagingStatMatches reports whether the on-disk stat data still matches the
// staged entry, allowing Status to skip re-hashing unchanged files.
func stagingStatMatches(se *StagingEntry, info os.FileInfo) bool {
	if se == nil {
		return false
	}
	if normalizeFileMode(se.Mode) != modeFromFileInfo(info) {
		return false
	}
	if se.Size != info.Size() {
		return false
	}
	return se.ModTime == info.ModTime().UnixNano()
}

// headTreeEntries reads the HEAD commit's tree and flattens it into a map of
// path → blob state. If there are no commits yet (fresh repo) or the tree
// cannot be read, an empty map is returned.
func (r *Repo) headTreeEntries() map[string]headTreeState {
	result := make(map[string]headTreeState)

	headHash, err := r.ResolveRef("HEAD")
	if err != nil {
		return result
	}

	commit, err := r.Store.ReadCommit(headHash)
	if err != nil {
		return result
	}

	entries, err := r.FlattenTree(commit.TreeHash)
	if err != nil {
		return result
	}
	for _, e := range entries {
		result[e.Path] = headTreeState{
			BlobHash: e.BlobHash,
			Mode:     normalizeFileMode(e.Mode),
		}
	}
	return result
}
