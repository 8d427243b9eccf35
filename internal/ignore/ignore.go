package ignore

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// File holds extra exclude patterns next to the config, one per line.
const File = ".lightdashignore"

// Matcher checks files against exclude patterns.
type Matcher struct {
	gi *gitignore.GitIgnore
}

// Load compiles patterns plus the contents of .lightdashignore in dir, if
// present. Returns a Matcher that matches nothing when there are no patterns.
func Load(dir string, patterns []string) (*Matcher, error) {
	lines := append([]string(nil), patterns...)

	data, err := os.ReadFile(filepath.Join(dir, File))
	switch {
	case err == nil:
		lines = append(lines, strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")...)
	case !os.IsNotExist(err):
		return nil, err
	}

	if len(lines) == 0 {
		return &Matcher{}, nil
	}
	return &Matcher{gi: gitignore.CompileIgnoreLines(lines...)}, nil
}

// Ignored reports whether path matches an exclude pattern.
func (m *Matcher) Ignored(path string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(filepath.ToSlash(path))
}

// AllIgnored returns true if all given file paths match the ignore patterns.
func (m *Matcher) AllIgnored(files []string) bool {
	if m.gi == nil {
		return false
	}
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !m.Ignored(f) {
			return false
		}
	}
	return true
}
