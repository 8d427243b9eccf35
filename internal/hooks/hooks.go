package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/re-cinq/lightdash-hooks/internal/markers"
)

const (
	shebang  = "#!/bin/sh"
	hookName = "pre-commit"
)

// DefaultCommand is the check run by the installed hook.
const DefaultCommand = "check-duplicate-dimensions-and-metrics --staged"

func preCommitBlock(bin, command string) string {
	return fmt.Sprintf(`%s
if command -v %s >/dev/null 2>&1; then
    %s %s || exit 1
fi
%s`, markers.Start, bin, bin, command, markers.End)
}

// Path returns the pre-commit hook path inside hooksDir.
func Path(hooksDir string) string {
	return filepath.Join(hooksDir, hookName)
}

// Install installs or updates the lightdash-hooks block in the pre-commit
// hook. bin is the executable the hook invokes.
func Install(hooksDir, bin, command string) error {
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("creating hooks dir: %w", err)
	}

	path := Path(hooksDir)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s hook: %w", hookName, err)
	}

	content, err := markers.Insert(string(existing), preCommitBlock(bin, command), shebang)
	if err != nil {
		return fmt.Errorf("%s hook: %w", hookName, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("writing %s hook: %w", hookName, err)
	}
	return nil
}

// Installed reports whether the pre-commit hook carries the block.
func Installed(hooksDir string) (bool, error) {
	data, err := os.ReadFile(Path(hooksDir))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s hook: %w", hookName, err)
	}
	return markers.Contains(string(data)), nil
}

// Remove removes the lightdash-hooks block from the pre-commit hook.
func Remove(hooksDir string) error {
	path := Path(hooksDir)

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s hook: %w", hookName, err)
	}

	result, found, err := markers.Remove(string(existing))
	if err != nil {
		return fmt.Errorf("%s hook: %w", hookName, err)
	}
	if !found {
		return nil
	}
	if strings.TrimSpace(result) == "" || strings.TrimSpace(result) == shebang {
		result = shebang + "\n"
	}

	if err := os.WriteFile(path, []byte(result), 0o755); err != nil {
		return fmt.Errorf("writing %s hook: %w", hookName, err)
	}
	return nil
}
