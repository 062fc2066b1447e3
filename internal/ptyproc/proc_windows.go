//go:build windows

package ptyproc

import (
	"os"
	"os/exec"
)

// setProcGroup is a no-op on Windows; creack/pty does not support process
// groups there and Kill falls back to terminating the process directly.
func setProcGroup(cmd *exec.Cmd) {}

// terminate has no graceful-signal equivalent to SIGTERM on Windows, so it
// goes straight to forceKill.
func terminate(pid int) error {
	return forceKill(pid)
}

// forceKill terminates the process by pid.
func forceKill(pid int) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Kill()
}
