package repo

import "errors"

var (
	// ErrAlreadyExists indicates Init was called on a path that already
	// contains a repository.
	ErrAlreadyExists = errors.New("repository already exists")

	// ErrNotARepository indicates Open found no repository marker at the
	// path or any of its parents.
	ErrNotARepository = errors.New("not a tack repository")

	// ErrRefNotFound indicates a reference name is unknown.
	ErrRefNotFound = errors.New("reference not found")

	// ErrUnbornBranch indicates a reference exists but has never been
	// pointed at a commit (fresh repository, no commits yet).
	ErrUnbornBranch = errors.New("branch has no commits yet")

	// ErrPathNotFound indicates a strict stage target does not exist in
	// the working tree.
	ErrPathNotFound = errors.New("path not found")

	// ErrInvalidParents indicates an attempt to create a zero-parent
	// commit on a branch that already has history.
	ErrInvalidParents = errors.New("invalid parents: branch already has history")

	// ErrRefCASMismatch indicates a ref compare-and-swap update found a
	// different current value than expected.
	ErrRefCASMismatch = errors.New("ref compare-and-swap mismatch")
)
