package repo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// makeLinearHistory commits the given messages in order and returns the
// repo plus the commit hashes, oldest first.
func makeLinearHistory(t *testing.T, messages ...string) (*Repo, []object.Hash) {
	t.Helper()
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	hashes := make([]object.Hash, 0, len(messages))
	for i, msg := range messages {
		writeWorkFile(t, r, "file.txt", []byte(msg+"\n"))
		if err := r.Add([]string{"file.txt"}); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
		h, err := r.Commit(msg, "tester")
		if err != nil {
			t.Fatalf("Commit(%q): %v", msg, err)
		}
		hashes = append(hashes, h)
	}
	return r, hashes
}

func TestHistory_ThreeCommitsNewestFirst(t *testing.T) {
	r, hashes := makeLinearHistory(t, "first", "second", "third")

	entries, err := r.History(hashes[2]).Collect(0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("history entries = %d, want 3", len(entries))
	}

	wantMessages := []string{"third", "second", "first"}
	for i, want := range wantMessages {
		if entries[i].Commit.Message != want {
			t.Errorf("entries[%d].Message = %q, want %q", i, entries[i].Commit.Message, want)
		}
	}
	if entries[0].Hash != hashes[2] || entries[2].Hash != hashes[0] {
		t.Error("entry hashes do not line up with commit order")
	}

	// Each commit carries the previous one as sole parent.
	if len(entries[0].Commit.Parents) != 1 || entries[0].Commit.Parents[0] != hashes[1] {
		t.Errorf("third commit parents = %v, want [%s]", entries[0].Commit.Parents, hashes[1])
	}
	if len(entries[1].Commit.Parents) != 1 || entries[1].Commit.Parents[0] != hashes[0] {
		t.Errorf("second commit parents = %v, want [%s]", entries[1].Commit.Parents, hashes[0])
	}
	if len(entries[2].Commit.Parents) != 0 {
		t.Errorf("first commit parents = %v, want none", entries[2].Commit.Parents)
	}
}

func TestHistory_IsRestartable(t *testing.T) {
	r, hashes := makeLinearHistory(t, "first", "second")

	// Two independent iterations over the same start commit.
	for run := 0; run < 2; run++ {
		entries, err := r.History(hashes[1]).Collect(0)
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		if len(entries) != 2 {
			t.Fatalf("run %d: entries = %d, want 2", run, len(entries))
		}
	}

	// A partially drained iterator does not disturb a fresh one.
	it := r.History(hashes[1])
	if _, err := it.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	entries, err := r.History(hashes[1]).Collect(0)
	if err != nil {
		t.Fatalf("fresh iterator: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("fresh iterator entries = %d, want 2", len(entries))
	}
}

func TestHistory_IsLazy(t *testing.T) {
	r, hashes := makeLinearHistory(t, "first", "second", "third")

	entries, err := r.History(hashes[2]).Collect(2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("limited entries = %d, want 2", len(entries))
	}
	if entries[0].Commit.Message != "third" || entries[1].Commit.Message != "second" {
		t.Errorf("limited walk = [%q %q], want [third second]", entries[0].Commit.Message, entries[1].Commit.Message)
	}
}

func TestHistory_DamagedParentFailsCorrupt(t *testing.T) {
	r, hashes := makeLinearHistory(t, "first", "second")

	// Damage the first commit's object file; walking from the second must
	// surface ErrCorrupt instead of silently truncating history.
	h := hashes[0]
	path := filepath.Join(r.TackDir, "objects", string(h[:2]), string(h[2:]))
	if err := os.WriteFile(path, []byte("damaged"), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	it := r.History(hashes[1])
	var err error
	for {
		var e *HistoryEntry
		e, err = it.Next()
		if e == nil || err != nil {
			break
		}
	}
	if !errors.Is(err, object.ErrCorrupt) {
		t.Errorf("history over damaged graph = %v, want ErrCorrupt", err)
	}
}

func TestLog_FirstParentWithLimit(t *testing.T) {
	r, hashes := makeLinearHistory(t, "first", "second", "third")

	commits, err := r.Log(hashes[2], 10)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if len(commits) != 3 {
		t.Fatalf("Log returned %d commits, want 3", len(commits))
	}
	if commits[0].Message != "third" || commits[2].Message != "first" {
		t.Errorf("Log order = [%q .. %q], want [third .. first]", commits[0].Message, commits[2].Message)
	}

	limited, err := r.Log(hashes[2], 2)
	if err != nil {
		t.Fatalf("Log(limit=2): %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Log(limit=2) returned %d commits, want 2", len(limited))
	}
}
