// Package runexec drives ptyproc.Process for the headless CLI surface:
// no TUI, just line-prefixed output and an aggregate exit status, the
// way `fnug run`/`fnug check` present a PTY Process on a plain terminal.
package runexec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/fnugerr"
	"github.com/fnug-run/fnug/internal/ptyproc"
)

// defaultCols/defaultRows size the PTY for commands run headlessly, when
// there's no real terminal size to inherit.
const (
	defaultCols = 120
	defaultRows = 40
)

// Result is one command's outcome.
type Result struct {
	Command  config.Command
	ExitCode int
	Err      error
}

// Failed reports whether this result should fail a `fnug check` run.
func (r Result) Failed() bool {
	return r.Err != nil || r.ExitCode != 0
}

// RunAll spawns every command concurrently, prefixing each line of output
// with the command's name, and waits for all of them to finish. It
// returns the first spawn error encountered, if any; per-command exit
// codes are reported through results, not through the returned error.
func RunAll(ctx context.Context, cmds []config.Command, out io.Writer) error {
	_, err := RunAllResults(ctx, cmds, out)
	return err
}

// RunAllResults is RunAll but also returns each command's Result, so
// callers (fnug check) can inspect exit codes individually.
func RunAllResults(ctx context.Context, cmds []config.Command, out io.Writer) ([]Result, error) {
	results := make([]Result, len(cmds))
	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstSpawnErr error

	for i, c := range cmds {
		wg.Add(1)
		go func(i int, c config.Command) {
			defer wg.Done()
			res := runOne(ctx, c, out)
			results[i] = res
			if errors.Is(res.Err, fnugerr.ErrProcessSpawn) {
				mu.Lock()
				if firstSpawnErr == nil {
					firstSpawnErr = res.Err
				}
				mu.Unlock()
			}
		}(i, c)
	}
	wg.Wait()

	return results, firstSpawnErr
}

func runOne(ctx context.Context, c config.Command, out io.Writer) Result {
	p, err := ptyproc.Spawn(c, defaultCols, defaultRows)
	if err != nil {
		return Result{Command: c, ExitCode: -1, Err: err}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var lastLines int
	for frame := range p.Output(runCtx) {
		emitNewLines(out, c.Name, frame.Rows, &lastLines)
		switch frame.Status {
		case ptyproc.Exited, ptyproc.Crashed, ptyproc.Killed:
			status, exitCode, statusErr := p.Status()
			return Result{Command: c, ExitCode: exitCode, Err: statusErrIfCrashed(status, statusErr)}
		}
	}

	select {
	case <-ctx.Done():
		_ = p.Kill()
		return Result{Command: c, ExitCode: -1, Err: fmt.Errorf("%w: %s", fnugerr.ErrCancelled, c.Name)}
	default:
	}
	status, exitCode, statusErr := p.Status()
	return Result{Command: c, ExitCode: exitCode, Err: statusErrIfCrashed(status, statusErr)}
}

func statusErrIfCrashed(status ptyproc.State, err error) error {
	if status == ptyproc.Crashed {
		return err
	}
	return nil
}

// emitNewLines prints only the rows appended since the previous frame,
// since Rows is a full-screen render rather than an append-only log.
func emitNewLines(out io.Writer, name string, rows []string, lastLines *int) {
	if len(rows) <= *lastLines {
		return
	}
	for _, line := range rows[*lastLines:] {
		fmt.Fprintf(out, "[%s] %s\n", name, line)
	}
	*lastLines = len(rows)
}
