package repo

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreChecker determines if a path should be ignored. It always ignores
// the repository metadata directories (.tack/ and .git/); additional
// patterns come from a .tackignore file at the repository root.
type IgnoreChecker struct {
	patterns []ignorePattern
}

type ignorePattern struct {
	pattern  string
	negated  bool
	dirOnly  bool
	hasSlash bool // pattern contains a slash, so match against full path
}

// NewIgnoreChecker creates an IgnoreChecker for the given repository root.
func NewIgnoreChecker(repoRoot string) *IgnoreChecker {
	ic := &IgnoreChecker{}

	ic.patterns = append(ic.patterns,
		ignorePattern{pattern: ".tack"},
		ignorePattern{pattern: ".git"},
	)

	ignorePath := filepath.Join(repoRoot, ".tackignore")
	f, err := os.Open(ignorePath)
	if err == nil {
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if p := parseIgnoreLine(scanner.Text()); p != nil {
				ic.patterns = append(ic.patterns, *p)
			}
		}
	}

	return ic
}

// parseIgnoreLine parses a single line from a .tackignore file. Returns nil
// if the line is empty or a comment.
func parseIgnoreLine(line string) *ignorePattern {
	line = strings.TrimRight(line, " \t")

	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	p := &ignorePattern{}

	// Negation: lines starting with ! un-ignore a pattern.
	if strings.HasPrefix(line, "!") {
		p.negated = true
		line = line[1:]
	}

	// Directory-only: lines ending with / match directories only.
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimRight(line, "/")
	}

	p.hasSlash = strings.Contains(line, "/")
	p.pattern = line
	return p
}

// IsIgnored checks whether a relative path should be ignored. The path should
// use forward slashes and be relative to the repository root.
//
// Last matching pattern wins (to support negation).
func (ic *IgnoreChecker) IsIgnored(path string) bool {
	path = filepath.ToSlash(path)

	ignored := false
	for i := range ic.patterns {
		if ic.patterns[i].matches(path) {
			ignored = !ic.patterns[i].negated
		}
	}
	return ignored
}

// matches checks if the given relative path matches this ignore pattern.
func (p *ignorePattern) matches(path string) bool {
	// Metadata directories and dir-only patterns match the directory itself
	// or anything beneath it.
	if p.dirOnly || p.pattern == ".tack" || p.pattern == ".git" {
		if path == p.pattern || strings.HasPrefix(path, p.pattern+"/") {
			return true
		}
	}
	if p.dirOnly {
		return false
	}

	if p.hasSlash {
		// Pattern contains a slash: match against the full relative path.
		matched, _ := filepath.Match(p.pattern, path)
		return matched
	}

	// Pattern without a slash: match against the filename component only.
	matched, _ := filepath.Match(p.pattern, filepath.Base(path))
	return matched
}
