// Package cli is the thin cobra-based command surface around the engine:
// resolve a config, select or run commands, and expose the loader's
// schema/validate helpers, standing in for the out-of-scope TUI.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	Version    = "dev"

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "fnug",
	Short: "fnug - auto-selecting lint/test command runner",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "path", "p", "", "path to config file (default: search upward for .fnug.yaml/.fnug.yml/.fnug.json)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
