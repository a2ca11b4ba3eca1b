package repo

import (
	"os"
	"path/filepath"
	"testing"
)

func newCheckerWithPatterns(t *testing.T, patterns string) *IgnoreChecker {
	t.Helper()
	dir := t.TempDir()
	if patterns != "" {
		if err := os.WriteFile(filepath.Join(dir, ".tackignore"), []byte(patterns), 0o644); err != nil {
			t.Fatalf("write .tackignore: %v", err)
		}
	}
	return NewIgnoreChecker(dir)
}

func TestIgnore_MetadataDirsAlwaysIgnored(t *testing.T) {
	ic := newCheckerWithPatterns(t, "")

	for _, path := range []string{".tack", ".tack/objects/ab/cd", ".git", ".git/config"} {
		if !ic.IsIgnored(path) {
			t.Errorf("IsIgnored(%q) = false, want true", path)
		}
	}
	if ic.IsIgnored("src/main.go") {
		t.Error("regular file ignored with no patterns")
	}
}

func TestIgnore_GlobPatterns(t *testing.T) {
	ic := newCheckerWithPatterns(t, "*.log\ntmp/\n")

	cases := []struct {
		path string
		want bool
	}{
		{"debug.log", true},
		{"nested/dir/trace.log", true},
		{"tmp", true},
		{"tmp/scratch.txt", true},
		{"tmpfile.txt", false},
		{"main.go", false},
	}
	for _, c := range cases {
		if got := ic.IsIgnored(c.path); got != c.want {
			t.Errorf("IsIgnored(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestIgnore_NegationLastMatchWins(t *testing.T) {
	ic := newCheckerWithPatterns(t, "*.log\n!keep.log\n")

	if !ic.IsIgnored("other.log") {
		t.Error("other.log should be ignored")
	}
	if ic.IsIgnored("keep.log") {
		t.Error("keep.log should be un-ignored by negation")
	}
}

func TestIgnore_CommentsAndBlankLines(t *testing.T) {
	ic := newCheckerWithPatterns(t, "# comment\n\n*.bin\n")

	if !ic.IsIgnored("a.bin") {
		t.Error("a.bin should be ignored")
	}
	if ic.IsIgnored("comment") {
		t.Error("comment lines must not become patterns")
	}
}

func TestIgnore_SlashPatternMatchesFullPath(t *testing.T) {
	ic := newCheckerWithPatterns(t, "build/*.o\n")

	if !ic.IsIgnored("build/main.o") {
		t.Error("build/main.o should be ignored")
	}
	if ic.IsIgnored("src/main.o") {
		t.Error("src/main.o should not match a rooted pattern")
	}
}
