package schema

import (
	"fmt"
	"strings"
)

// Version selects which Lightdash dbt schema a file is validated against.
type Version int

const (
	// Auto picks V1 or V2 per file, see Detect.
	Auto Version = iota
	// V1 is lightdash-dbt-2.0 (dbt 1.9 and earlier): metadata under meta.
	V1
	// V2 is lightdash-dbt-2.5 (dbt 1.10 and later): metadata under config.meta.
	V2
)

func (v Version) String() string {
	switch v {
	case Auto:
		return "auto"
	case V1:
		return "v1"
	case V2:
		return "v2"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// Title is the name of the JSON Schema backing v.
func (v Version) Title() string {
	switch v {
	case V1:
		return "lightdash-dbt-2.0"
	case V2:
		return "lightdash-dbt-2.5"
	}
	return v.String()
}

// ParseVersion parses a user-supplied schema version.
func ParseVersion(s string) (Version, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "v1", "1", "2.0", "dbt-1.9":
		return V1, nil
	case "v2", "2", "2.5", "dbt-1.10":
		return V2, nil
	}
	return Auto, fmt.Errorf("unknown schema version %q (want auto, v1 or v2)", s)
}

// detect reports V2 when any model or column nests its metadata under
// config.meta, V1 otherwise.
func detect(doc any) Version {
	root, ok := doc.(map[string]any)
	if !ok {
		return V1
	}
	models, _ := root["models"].([]any)
	for _, m := range models {
		model, ok := m.(map[string]any)
		if !ok {
			continue
		}
		if hasConfigMeta(model) {
			return V2
		}
		columns, _ := model["columns"].([]any)
		for _, c := range columns {
			if column, ok := c.(map[string]any); ok && hasConfigMeta(column) {
				return V2
			}
		}
	}
	return V1
}

func hasConfigMeta(node map[string]any) bool {
	cfg, ok := node["config"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = cfg["meta"]
	return ok
}
