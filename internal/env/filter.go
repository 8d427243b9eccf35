package env

import "strings"

// Without returns a copy of environ with variables matching any of the given
// prefixes removed. Prefixes should include the '=' suffix for exact matching
// (e.g., "GIT_DIR=", not "GIT_DIR").
func Without(environ []string, excludePrefixes ...string) []string {
	result := make([]string, 0, len(environ))
	for _, e := range environ {
		skip := false
		for _, prefix := range excludePrefixes {
			if strings.HasPrefix(e, prefix) {
				skip = true
				break
			}
		}
		if !skip {
			result = append(result, e)
		}
	}
	return result
}
