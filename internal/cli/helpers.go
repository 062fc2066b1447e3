package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fnug-run/fnug/internal/core"
)

// loadCore resolves -p/--path against the search order in internal/config
// and constructs a Core Facade over the result, shared by every
// subcommand that needs to run the engine.
func loadCore() (*core.Core, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	c, err := core.FromConfigFile(configPath, cwd)
	if err != nil {
		logger.Error("loading config", "error", err)
		return nil, err
	}
	return c, nil
}

// setupSignalHandler returns a channel that receives SIGINT/SIGTERM so
// long-running subcommands (run) can cancel their
// context instead of being killed mid-write.
func setupSignalHandler() chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}
