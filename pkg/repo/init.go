package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlexanderThaller/tack/pkg/object"
)

// Init creates a new tack repository at path. It creates the .tack/
// directory structure: HEAD, objects/, refs/heads/ and logs/. Fails with
// ErrAlreadyExists if a .tack/ directory is already present, leaving the
// existing repository untouched.
func Init(path string) (*Repo, error) {
	tackDir := filepath.Join(path, ".tack")

	if _, err := os.Stat(tackDir); err == nil {
		return nil, fmt.Errorf("init %s: %w", tackDir, ErrAlreadyExists)
	}

	dirs := []string{
		filepath.Join(tackDir, "objects"),
		filepath.Join(tackDir, "refs", "heads"),
		filepath.Join(tackDir, "logs", "refs", "heads"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	// Default HEAD points at an unborn main branch.
	headPath := filepath.Join(tackDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	return &Repo{
		RootDir: path,
		TackDir: tackDir,
		Store:   object.NewStore(tackDir),
	}, nil
}

// Open searches upward from path for a .tack/ directory and opens the
// repository. Fails with ErrNotARepository if no marker directory is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		tackDir := filepath.Join(cur, ".tack")
		info, err := os.Stat(tackDir)
		if err == nil && info.IsDir() {
			return &Repo{
				RootDir: cur,
				TackDir: tackDir,
				Store:   object.NewStore(tackDir),
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return nil, fmt.Errorf("open %s: %w (or any parent up to /)", path, ErrNotARepository)
		}
		cur = parent
	}
}
