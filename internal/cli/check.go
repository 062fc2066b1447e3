package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnug-run/fnug/internal/core"
	"github.com/fnug-run/fnug/internal/runexec"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the selected commands once and fail if any of them do",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCore()
		if err != nil {
			return err
		}

		unlock, err := core.AcquireRunLock(c.Cwd())
		if err != nil {
			return err
		}
		defer unlock()

		selected, err := c.SelectedCommands()
		if err != nil {
			return err
		}
		if len(selected) == 0 {
			fmt.Println("nothing selected")
			return nil
		}

		results, err := runexec.RunAllResults(context.Background(), selected, os.Stdout)
		if err != nil {
			return err
		}

		failed := false
		for _, r := range results {
			if r.Failed() {
				failed = true
				fmt.Fprintf(os.Stderr, "FAIL %s (exit %d): %v\n", r.Command.Name, r.ExitCode, r.Err)
			}
		}
		if failed {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
