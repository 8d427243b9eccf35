package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/re-cinq/lightdash-hooks/internal/config"
	"github.com/re-cinq/lightdash-hooks/internal/git"
)

// loadAndValidateConfig loads the config file and validates it, printing
// errors to stderr. A missing file is only an error when -p was given.
func loadAndValidateConfig(cmd *cobra.Command) (*config.Config, error) {
	required := cmd.Flags().Changed("path")
	cfg, err := config.LoadOrDefault(configPath, required)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded config", zap.String("path", configPath), zap.Bool("required", required))

	errs := config.Validate(cfg)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", e)
		}
		return nil, fmt.Errorf("%s: %d validation error(s)", configPath, len(errs))
	}
	return cfg, nil
}

// configDir is the directory config-relative paths (include, exclude) are
// resolved against.
func configDir() string {
	return filepath.Dir(configPath)
}

// resolveRepo finds the git repository root containing the working directory.
func resolveRepo() (string, error) {
	root, err := git.RepoRoot(".")
	if err != nil {
		return "", fmt.Errorf("could not find git repository root: %w", err)
	}
	return root, nil
}
