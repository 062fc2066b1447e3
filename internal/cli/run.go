package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/core"
	"github.com/fnug-run/fnug/internal/runexec"
)

var runWatch bool

func init() {
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "re-select and re-run commands as files change")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the currently selected commands",
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

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := setupSignalHandler()
		go func() {
			<-sigCh
			cancel()
		}()

		if !runWatch {
			selected, err := c.SelectedCommands()
			if err != nil {
				return err
			}
			printSelection(selected)
			return runexec.RunAll(ctx, selected, os.Stdout)
		}

		stream, err := c.Watch(ctx)
		if err != nil {
			return err
		}
		defer stream.Close()

		for {
			select {
			case <-ctx.Done():
				return nil
			case cmds, ok := <-stream.Next():
				if !ok {
					return nil
				}
				printSelection(cmds)
				if err := runexec.RunAll(ctx, cmds, os.Stdout); err != nil {
					logger.Error("run failed", "error", err)
				}
			case err, ok := <-stream.Errs():
				if !ok {
					continue
				}
				logger.Error("watch error", "error", err)
			}
		}
	},
}

func printSelection(cmds []config.Command) {
	if len(cmds) == 0 {
		fmt.Fprintln(os.Stderr, "no commands selected")
		return
	}
	for _, c := range cmds {
		fmt.Fprintf(os.Stderr, "-> %s (%s)\n", c.Name, c.Cmd)
	}
}
