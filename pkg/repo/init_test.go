package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, sub := range []string{
		"objects",
		filepath.Join("refs", "heads"),
		filepath.Join("logs", "refs", "heads"),
	} {
		info, err := os.Stat(filepath.Join(r.TackDir, sub))
		if err != nil || !info.IsDir() {
			t.Errorf("missing directory %s: %v", sub, err)
		}
	}

	head, err := r.Head()
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if head != "refs/heads/main" {
		t.Errorf("HEAD = %q, want refs/heads/main", head)
	}
}

func TestInit_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	// Put some state in the repository, then try to re-init.
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := r.StagePaths([]string{"a.txt"}); err != nil {
		t.Fatalf("StagePaths: %v", err)
	}
	h, err := r.Commit("add a", "tester")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := Init(dir); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("re-Init = %v, want ErrAlreadyExists", err)
	}

	// Existing objects and references are untouched.
	got, err := r.ResolveRef("HEAD")
	if err != nil {
		t.Fatalf("ResolveRef after failed re-init: %v", err)
	}
	if got != h {
		t.Errorf("HEAD = %q, want %q", got, h)
	}
	if _, err := r.Store.ReadCommit(h); err != nil {
		t.Errorf("ReadCommit after failed re-init: %v", err)
	}
}

func TestOpen_NotARepository(t *testing.T) {
	if _, err := Open(t.TempDir()); !errors.Is(err, ErrNotARepository) {
		t.Errorf("Open = %v, want ErrNotARepository", err)
	}
}

func TestOpen_FindsRepoFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir); err != nil {
		t.Fatalf("Init: %v", err)
	}

	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	r, err := Open(sub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(r.RootDir)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	if resolved != want {
		t.Errorf("RootDir = %q, want %q", resolved, want)
	}
}
