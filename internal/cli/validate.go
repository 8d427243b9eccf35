package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/re-cinq/lightdash-hooks/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate .lightdash-hooks.yaml and report errors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		errs := config.Validate(cfg)
		if len(errs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		}

		for _, e := range errs {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return fmt.Errorf("%d validation error(s)", len(errs))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
