package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/fnug-run/fnug/internal/fileutil"
)

// errLockHeld is returned when another fnug run already holds the lock
// for the same repository.
var errLockHeld = errors.New("another fnug run is already active in this repository")

// IsLockHeld reports whether err indicates the run lock is already held.
func IsLockHeld(err error) bool {
	return errors.Is(err, errLockHeld)
}

func lockFilePath(repoDir string) string {
	return filepath.Join(fileutil.FnugDir(repoDir), "run.lock")
}

// AcquireRunLock takes an exclusive, non-blocking file lock scoped to
// repoDir so that two `fnug run`/`fnug check` invocations against the
// same tree don't race over the same PTY processes. Returns an unlock
// function; the lock is also released automatically on process exit.
func AcquireRunLock(repoDir string) (unlock func(), err error) {
	lockPath := lockFilePath(repoDir)
	if err := fileutil.EnsureDir(filepath.Dir(lockPath)); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w", errLockHeld)
	}

	return func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		f.Close()
	}, nil
}
