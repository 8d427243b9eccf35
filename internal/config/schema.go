package config

import "encoding/json"

// Schema returns a JSON Schema describing .lightdash-hooks.yaml as indented JSON.
func Schema() []byte {
	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                ".lightdash-hooks.yaml",
		"description":          "Configuration for lightdash-hooks, which checks dbt schema files for metric and dimension names that collide.",
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"schema": map[string]any{
				"description": "Lightdash dbt schema to validate against. v1 is lightdash-dbt-2.0 (dbt 1.9 and earlier, metadata under meta). v2 is lightdash-dbt-2.5 (dbt 1.10 and later, metadata under config.meta). auto picks one per file.",
				"type":        "string",
				"enum":        []string{"auto", "v1", "v2"},
				"default":     "auto",
			},
			"scope": map[string]any{
				"description": "Which names share a namespace. all compares metrics and dimensions together; dimensions and metrics only compare within their own category, per model.",
				"type":        "string",
				"enum":        []string{"all", "dimensions", "metrics"},
				"default":     "all",
			},
			"include": map[string]any{
				"description": "Globs (doublestar syntax, relative to the repository root) of files checked by --all.",
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"default":     DefaultInclude,
			},
			"exclude": map[string]any{
				"description": "Patterns in .gitignore syntax. Matching files are never checked, even when passed explicitly.",
				"type":        "array",
				"items":       map[string]any{"type": "string"},
			},
			"show_lines": map[string]any{
				"description": "Append the source line number to every reported occurrence.",
				"type":        "boolean",
			},
			"jobs": map[string]any{
				"description": "Maximum number of files checked concurrently. 0 uses the number of CPUs.",
				"type":        "integer",
				"minimum":     0,
			},
		},
	}

	out, _ := json.MarshalIndent(schema, "", "  ")
	return out
}
