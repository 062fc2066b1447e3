package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnug-run/fnug/internal/gitignore"
	"github.com/fnug-run/fnug/internal/hooks"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Install or remove fnug's git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install a pre-commit hook that runs fnug check",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoDir, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := hooks.Install(repoDir); err != nil {
			return fmt.Errorf("installing hook: %w", err)
		}
		if err := gitignore.Install(repoDir); err != nil {
			return fmt.Errorf("updating .gitignore: %w", err)
		}
		fmt.Println("installed pre-commit hook")
		return nil
	},
}

var hookRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove fnug's pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		repoDir, err := os.Getwd()
		if err != nil {
			return err
		}
		if err := hooks.Remove(repoDir); err != nil {
			return fmt.Errorf("removing hook: %w", err)
		}
		if err := gitignore.Remove(repoDir); err != nil {
			return fmt.Errorf("updating .gitignore: %w", err)
		}
		fmt.Println("removed pre-commit hook")
		return nil
	},
}

func init() {
	hookCmd.AddCommand(hookInstallCmd, hookRemoveCmd)
	rootCmd.AddCommand(hookCmd)
}
