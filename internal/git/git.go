package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/re-cinq/lightdash-hooks/internal/env"
)

// gitEnvPrefixes lists git environment variables stripped from child
// processes. Hooks may export GIT_DIR relative to the hook's working
// directory, which resolves the wrong repository once cmd.Dir differs.
// GIT_INDEX_FILE is kept: during partial commits it names the index the
// commit is being built from.
var gitEnvPrefixes = []string{
	"GIT_DIR=",
	"GIT_WORK_TREE=",
	"GIT_OBJECT_DIRECTORY=",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES=",
	"GIT_COMMON_DIR=",
}

// Run executes a git command in the given directory.
func Run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(env.Without(os.Environ(), gitEnvPrefixes...), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RepoRoot returns the top-level directory of the work tree containing dir.
func RepoRoot(dir string) (string, error) {
	return Run(dir, "rev-parse", "--show-toplevel")
}

// HooksDir returns the absolute path of the repository's hooks directory.
func HooksDir(dir string) (string, error) {
	p, err := Run(dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(abs, p), nil
}

// StagedFiles returns paths, relative to the repository root, of files added,
// copied, modified or renamed in the index.
func StagedFiles(dir string) ([]string, error) {
	out, err := Run(dir, "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}
