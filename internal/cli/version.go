package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of lightdash-hooks",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lightdash-hooks %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
