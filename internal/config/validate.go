package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks a loaded Config for semantic errors beyond what Load catches.
// Returns a list of human-readable error strings, one per issue.
func Validate(cfg *Config) []string {
	var errs []string

	if _, err := cfg.SchemaVersion(); err != nil {
		errs = append(errs, fmt.Sprintf("schema: %s", err))
	}
	if _, err := cfg.CheckScope(); err != nil {
		errs = append(errs, fmt.Sprintf("scope: %s", err))
	}
	if cfg.Jobs < 0 {
		errs = append(errs, fmt.Sprintf("jobs: must not be negative, got %d", cfg.Jobs))
	}

	for i, p := range cfg.Include {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("include[%d]: required field is empty", i))
		} else if !doublestar.ValidatePattern(p) {
			errs = append(errs, fmt.Sprintf("include[%d]: invalid glob %q", i, p))
		}
	}
	for i, p := range cfg.Exclude {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Sprintf("exclude[%d]: required field is empty", i))
		}
	}

	return errs
}
