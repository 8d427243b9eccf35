package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/re-cinq/lightdash-hooks/internal/duplicates"
	"github.com/re-cinq/lightdash-hooks/internal/schema"
)

// DefaultPath is where the config is looked up when -p is not given.
const DefaultPath = ".lightdash-hooks.yaml"

// DefaultInclude is used by --all when the config lists no include globs.
var DefaultInclude = []string{"**/*.yml", "**/*.yaml"}

type Config struct {
	Schema    string   `yaml:"schema,omitempty"`
	Scope     string   `yaml:"scope,omitempty"`
	Include   []string `yaml:"include,omitempty"`
	Exclude   []string `yaml:"exclude,omitempty"`
	ShowLines bool     `yaml:"show_lines,omitempty"`
	Jobs      int      `yaml:"jobs,omitempty"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Schema:  schema.Auto.String(),
		Scope:   duplicates.ScopeAll.String(),
		Include: append([]string(nil), DefaultInclude...),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.Include) == 0 {
		cfg.Include = append([]string(nil), DefaultInclude...)
	}
	return cfg, nil
}

// LoadOrDefault loads path, returning Default() when the file does not exist
// and required is false.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !required && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// SchemaVersion returns the configured schema version.
func (c *Config) SchemaVersion() (schema.Version, error) {
	return schema.ParseVersion(c.Schema)
}

// CheckScope returns the configured duplicate scope.
func (c *Config) CheckScope() (duplicates.Scope, error) {
	return duplicates.ParseScope(c.Scope)
}
