package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/re-cinq/lightdash-hooks/internal/config"
	"github.com/re-cinq/lightdash-hooks/internal/schema"
)

var schemaVersion string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Output a JSON Schema (dbt schema files or .lightdash-hooks.yaml)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var out []byte
		if schemaVersion == "config" {
			out = config.Schema()
		} else {
			v, err := schema.ParseVersion(schemaVersion)
			if err != nil {
				return err
			}
			if v == schema.Auto {
				return fmt.Errorf("--version must be v1, v2 or config")
			}
			if out, err = schema.JSONSchema(v); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	schemaCmd.Flags().StringVar(&schemaVersion, "version", "v2", "schema to print: v1, v2 or config")
	rootCmd.AddCommand(schemaCmd)
}
