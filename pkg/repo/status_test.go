package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func removeWorkFile(r *Repo, name string) error {
	return os.Remove(filepath.Join(r.RootDir, filepath.FromSlash(name)))
}

func statusByPath(entries []StatusEntry) map[string]StatusEntry {
	m := make(map[string]StatusEntry, len(entries))
	for _, e := range entries {
		m[e.Path] = e
	}
	return m
}

func TestStatus_UntrackedFile(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	writeWorkFile(t, r, "new.txt", []byte("new"))

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath := statusByPath(entries)
	if e, ok := byPath["new.txt"]; !ok || e.WorkStatus != StatusUntracked {
		t.Errorf("new.txt = %+v, want untracked", e)
	}
}

func TestStatus_StagedNewFile(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello"))

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath := statusByPath(entries)
	e, ok := byPath["a.txt"]
	if !ok {
		t.Fatal("a.txt missing from status")
	}
	if e.IndexStatus != StatusNew {
		t.Errorf("IndexStatus = %v, want StatusNew", e.IndexStatus)
	}
	if e.WorkStatus != StatusClean {
		t.Errorf("WorkStatus = %v, want StatusClean", e.WorkStatus)
	}
}

func TestStatus_DirtyAfterEdit(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello"))

	writeWorkFile(t, r, "a.txt", []byte("edited content"))

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath := statusByPath(entries)
	if e := byPath["a.txt"]; e.WorkStatus != StatusDirty {
		t.Errorf("WorkStatus = %v, want StatusDirty", e.WorkStatus)
	}
}

func TestStatus_CleanAfterCommit(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello"))
	if _, err := r.Commit("add a", "tester"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// Commit cleared the index; HEAD now carries a.txt, so the index
	// reports it deleted until it is staged again.
	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath := statusByPath(entries)
	e, ok := byPath["a.txt"]
	if !ok {
		t.Fatal("a.txt missing from status")
	}
	if e.IndexStatus != StatusDeleted {
		t.Errorf("IndexStatus = %v, want StatusDeleted (index consumed by commit)", e.IndexStatus)
	}

	// Re-staging the unchanged file settles everything back to clean.
	if err := r.Add([]string{"a.txt"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	entries, err = r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath = statusByPath(entries)
	e = byPath["a.txt"]
	if e.IndexStatus != StatusClean || e.WorkStatus != StatusClean {
		t.Errorf("a.txt = %+v, want clean/clean", e)
	}
}

func TestStatus_DeletedFromWorktree(t *testing.T) {
	r := initRepoWithFile(t, "a.txt", []byte("hello"))
	if err := removeWorkFile(r, "a.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	entries, err := r.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	byPath := statusByPath(entries)
	if e := byPath["a.txt"]; e.WorkStatus != StatusDeleted {
		t.Errorf("WorkStatus = %v, want StatusDeleted", e.WorkStatus)
	}
}
