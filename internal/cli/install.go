package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/re-cinq/lightdash-hooks/internal/git"
	"github.com/re-cinq/lightdash-hooks/internal/hooks"
)

var (
	installBinary  string
	installCommand string
)

func init() {
	installCmd.Flags().StringVar(&installBinary, "binary", "lightdash-hooks", "executable the hook runs")
	installCmd.Flags().StringVar(&installCommand, "command", hooks.DefaultCommand, "arguments passed to the executable")
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Add the duplicate check to the repository's pre-commit hook",
	Long: `Add a marked block to the pre-commit hook of the current git repository.
The block runs the duplicate check on staged schema files and is skipped when
the executable is not on PATH. Existing hook content is preserved and running
install again updates the block in place.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := hooksDir()
		if err != nil {
			return err
		}
		if err := hooks.Install(dir, installBinary, installCommand); err != nil {
			return fmt.Errorf("installing hook: %w", err)
		}
		log.Info("installed hook", zap.String("path", hooks.Path(dir)))
		fmt.Fprintf(cmd.OutOrStdout(), "installed %s\n", hooks.Path(dir))
		return nil
	},
}

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	Aliases: []string{"remove"},
	Short:   "Remove the duplicate check from the pre-commit hook",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := hooksDir()
		if err != nil {
			return err
		}
		installed, err := hooks.Installed(dir)
		if err != nil {
			return err
		}
		if !installed {
			fmt.Fprintln(cmd.OutOrStdout(), "not installed")
			return nil
		}
		if err := hooks.Remove(dir); err != nil {
			return fmt.Errorf("removing hook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed from %s\n", hooks.Path(dir))
		return nil
	},
}

func hooksDir() (string, error) {
	root, err := resolveRepo()
	if err != nil {
		return "", err
	}
	return git.HooksDir(root)
}
