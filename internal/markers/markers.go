package markers

import (
	"fmt"
	"strings"
)

const (
	Start = "# >>> lightdash-hooks >>>"
	End   = "# <<< lightdash-hooks <<<"
)

var errMissingEnd = fmt.Errorf("found start marker but no end marker")

// Insert inserts or replaces a marked block in content.
// If markers exist, the block between them is replaced.
// If content is empty and prefix is non-empty, the result is prefix+"\n\n"+block+"\n".
// If content is empty and prefix is empty, the result is block+"\n".
// Otherwise the block is appended (with a preceding blank line).
func Insert(content, block, prefix string) (string, error) {
	if strings.Contains(content, Start) {
		start := strings.Index(content, Start)
		end := strings.Index(content, End)
		if end == -1 {
			return "", errMissingEnd
		}
		end += len(End)
		return content[:start] + block + content[end:], nil
	}
	if content == "" {
		if prefix != "" {
			return prefix + "\n\n" + block + "\n", nil
		}
		return block + "\n", nil
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + block + "\n", nil
}

// Remove deletes the marked block and the newline after it. The second
// result is false when content has no block.
func Remove(content string) (string, bool, error) {
	start := strings.Index(content, Start)
	if start == -1 {
		return content, false, nil
	}
	end := strings.Index(content, End)
	if end == -1 {
		return "", false, errMissingEnd
	}
	end += len(End)

	before := strings.TrimRight(content[:start], "\n")
	after := strings.TrimPrefix(content[end:], "\n")
	result := before
	if result != "" && after != "" {
		result += "\n"
	}
	result += after
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result, true, nil
}

// Contains reports whether content already has a marked block.
func Contains(content string) bool {
	return strings.Contains(content, Start)
}
