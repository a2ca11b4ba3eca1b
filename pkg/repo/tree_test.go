package repo

import (
	"testing"
)

func TestBuildTree_OrderIndependent(t *testing.T) {
	files := map[string][]byte{
		"README.md":        []byte("# readme"),
		"pkg/util/util.go": []byte("package util"),
		"pkg/hash.go":      []byte("package pkg"),
		"cmd/main.go":      []byte("package main"),
	}

	// Stage the same set in two different orders in two repositories.
	orderA := []string{"README.md", "pkg/util/util.go", "pkg/hash.go", "cmd/main.go"}
	orderB := []string{"cmd/main.go", "pkg/hash.go", "README.md", "pkg/util/util.go"}

	rootA := buildTreeFromOrder(t, files, orderA)
	rootB := buildTreeFromOrder(t, files, orderB)

	if rootA != rootB {
		t.Errorf("root hashes differ across staging orders: %s vs %s", rootA, rootB)
	}
}

func buildTreeFromOrder(t *testing.T, files map[string][]byte, order []string) string {
	t.Helper()
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for name, data := range files {
		writeWorkFile(t, r, name, data)
	}
	for _, name := range order {
		if err := r.Add([]string{name}); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	root, err := r.BuildTree(stg)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	return string(root)
}

func TestBuildTree_FlattenTree_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	files := map[string][]byte{
		"README.md":          []byte("# readme"),
		"pkg/util/util.go":   []byte("package util\n\nfunc Util() {}\n"),
		"pkg/util/helper.go": []byte("package util\n\nfunc Helper() {}\n"),
		"cmd/main.go":        []byte("package main\n\nfunc main() {}\n"),
	}
	for name, data := range files {
		writeWorkFile(t, r, name, data)
	}

	paths := make([]string, 0, len(files))
	for name := range files {
		paths = append(paths, name)
	}
	if err := r.Add(paths); err != nil {
		t.Fatalf("Add: %v", err)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}

	rootHash, err := r.BuildTree(stg)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	if rootHash == "" {
		t.Fatal("BuildTree returned empty hash")
	}

	entries, err := r.FlattenTree(rootHash)
	if err != nil {
		t.Fatalf("FlattenTree: %v", err)
	}
	if len(entries) != len(files) {
		t.Fatalf("FlattenTree returned %d entries, want %d", len(entries), len(files))
	}

	flatPaths := make(map[string]TreeFileEntry)
	for _, e := range entries {
		flatPaths[e.Path] = e
	}
	for path, se := range stg.Entries {
		fe, ok := flatPaths[path]
		if !ok {
			t.Errorf("missing path %q in flattened tree", path)
			continue
		}
		if fe.BlobHash != se.BlobHash {
			t.Errorf("%s: BlobHash = %q, want %q", path, fe.BlobHash, se.BlobHash)
		}
	}
}

func TestBuildTree_EmptyStagingYieldsEmptyTree(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	stg, err := r.ReadStaging()
	if err != nil {
		t.Fatalf("ReadStaging: %v", err)
	}
	root, err := r.BuildTree(stg)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	tree, err := r.Store.ReadTree(root)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if len(tree.Entries) != 0 {
		t.Errorf("empty staging produced tree with %d entries", len(tree.Entries))
	}
}
