package fileutil

import "path/filepath"

// Under joins each slash-separated path in rel onto root.
func Under(root string, rel []string) []string {
	out := make([]string, len(rel))
	for i, p := range rel {
		out[i] = filepath.Join(root, filepath.FromSlash(p))
	}
	return out
}

// Rel returns path relative to base, or path unchanged when it can't be made
// relative.
func Rel(base, path string) string {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return path
	}
	return rel
}
