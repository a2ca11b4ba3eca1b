package repo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// CommitSigner signs canonical commit payload bytes and returns an encoded
// signature string to be persisted in CommitObj.Signature.
type CommitSigner func(payload []byte) (string, error)

// CreateCommit persists a commit object for the given tree and advances the
// current branch ref to it with an atomic compare-and-swap: a concurrent
// reader observes the old hash or the new one, never a partial write.
//
// parents carries the lineage of the new commit and is linear: at most one
// parent. Merge lineage is not constructed here, so more than one parent
// fails with ErrInvalidParents. An empty parents list is only legal while
// the branch is unborn; once history exists, re-rooting fails with
// ErrInvalidParents as well.
func (r *Repo) CreateCommit(treeHash object.Hash, message, author string, parents []object.Hash, signer CommitSigner) (object.Hash, error) {
	if len(parents) > 1 {
		return "", fmt.Errorf("create commit: %d parents, lineage is single-parent: %w",
			len(parents), ErrInvalidParents)
	}

	headHash, err := r.ResolveRef("HEAD")
	switch {
	case err == nil:
		if len(parents) == 0 {
			return "", fmt.Errorf("create commit: %w", ErrInvalidParents)
		}
	case errors.Is(err, ErrUnbornBranch):
		headHash = ""
	default:
		return "", fmt.Errorf("create commit: resolve HEAD: %w", err)
	}

	commitObj := &object.CommitObj{
		TreeHash:  treeHash,
		Parents:   parents,
		Author:    author,
		Timestamp: time.Now().Unix(),
		Message:   message,
	}
	if signer != nil {
		payload := object.CommitSigningPayload(commitObj)
		signature, err := signer(payload)
		if err != nil {
			return "", fmt.Errorf("create commit: sign: %w", err)
		}
		commitObj.Signature = signature
	}

	commitHash, err := r.Store.WriteCommit(commitObj)
	if err != nil {
		return "", fmt.Errorf("create commit: write: %w", err)
	}

	head, err := r.Head()
	if err != nil {
		return "", fmt.Errorf("create commit: read HEAD: %w", err)
	}

	// head is either a ref path ("refs/heads/main") or a detached hash.
	if strings.HasPrefix(head, "refs/") {
		if err := r.UpdateRefCAS(head, commitHash, headHash); err != nil {
			return "", fmt.Errorf("create commit: update ref %q: %w", head, err)
		}
	} else {
		if err := r.UpdateRefCAS("HEAD", commitHash, object.Hash(strings.TrimSpace(head))); err != nil {
			return "", fmt.Errorf("create commit: update detached HEAD: %w", err)
		}
	}

	return commitHash, nil
}

// Commit creates a new commit from the current staging area.
//
//  1. Build the tree from staging (an empty staging area freezes into the
//     empty tree; the commit still succeeds).
//  2. Resolve HEAD for the parent, tolerating the unborn case.
//  3. Persist the commit and advance the branch ref.
//  4. Clear the staging area.
//
// The sequence is effectively atomic for the caller: until the ref update
// succeeds the staging area is left unmodified, and a retry duplicates
// nothing because object writes are idempotent.
func (r *Repo) Commit(message, author string) (object.Hash, error) {
	return r.CommitWithSigner(message, author, nil)
}

// CommitWithSigner creates a new commit and signs it when signer is provided.
func (r *Repo) CommitWithSigner(message, author string, signer CommitSigner) (object.Hash, error) {
	stg, err := r.ReadStaging()
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	treeHash, err := r.BuildTree(stg)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	var parents []object.Hash
	parentHash, err := r.ResolveRef("HEAD")
	switch {
	case err == nil && parentHash != "":
		parents = append(parents, parentHash)
	case errors.Is(err, ErrUnbornBranch):
		// First commit: no parents.
	case err != nil:
		return "", fmt.Errorf("commit: resolve HEAD: %w", err)
	}

	commitHash, err := r.CreateCommit(treeHash, message, author, parents, signer)
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}

	// The commit is durable; staging is consumed only now.
	if err := r.ClearStaging(); err != nil {
		return commitHash, fmt.Errorf("commit: %w", err)
	}

	return commitHash, nil
}

// Log walks the commit history starting from the given hash, following
// first-parent links, returning up to limit commits in reverse-chronological
// order (newest first).
func (r *Repo) Log(start object.Hash, limit int) ([]*object.CommitObj, error) {
	var commits []*object.CommitObj
	current := start

	for len(commits) < limit {
		c, err := r.Store.ReadCommit(current)
		if err != nil {
			if errors.Is(err, object.ErrNotFound) {
				break
			}
			return nil, fmt.Errorf("log: read commit %s: %w", current, err)
		}
		commits = append(commits, c)

		// Follow first parent.
		if len(c.Parents) == 0 {
			break
		}
		current = c.Parents[0]
	}

	return commits, nil
}
