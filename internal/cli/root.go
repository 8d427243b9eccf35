package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/re-cinq/lightdash-hooks/internal/config"
	"github.com/re-cinq/lightdash-hooks/internal/logging"
)

var (
	configPath string
	logLevel   string
	Version    = "dev"

	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "lightdash-hooks",
	Short:         "Pre-commit checks for Lightdash metrics and dimensions in dbt schema files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "path", "p", config.DefaultPath, "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
}

// setupLogging replaces the no-op logger. --verbose lowers the default level
// to info unless --log-level was given explicitly.
func setupLogging(cmd *cobra.Command) error {
	level := logLevel
	if !cmd.Flags().Changed("log-level") {
		if v, err := cmd.Flags().GetBool("verbose"); err == nil && v {
			level = "info"
		}
	}

	l, err := logging.New(logging.WithLevel(level), logging.WithOutput(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	log = l.Named("lightdash-hooks")
	return nil
}

// Execute runs the root command. Failed checks have already been reported,
// so only other errors are printed.
func Execute() error {
	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil && !errors.Is(err, errChecksFailed) {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return err
}
