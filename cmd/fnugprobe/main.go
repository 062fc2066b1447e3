// fnugprobe drives internal/ptyproc directly against an arbitrary shell
// command, printing every rendered frame as it arrives. It exists to
// exercise the PTY Process in isolation, the way pty-spike exercised a
// raw creack/pty session before internal/ptyproc existed.
//
// Usage:
//
//	go run ./cmd/fnugprobe "go test ./..."
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/ptyproc"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fnugprobe <shell command>")
		os.Exit(2)
	}
	shellCmd := strings.Join(args, " ")

	cwd, err := os.Getwd()
	if err != nil {
		fatalf("Getwd: %v", err)
	}

	p, err := ptyproc.Spawn(config.Command{Name: "probe", Cmd: shellCmd, Cwd: cwd}, 120, 40)
	if err != nil {
		fatalf("Spawn: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = p.Kill()
		cancel()
	}()

	t0 := time.Now()
	for frame := range p.Output(ctx) {
		fmt.Printf("[+%6dms] status=%s generation=%d\n", time.Since(t0).Milliseconds(), frame.Status, frame.Generation)
		for _, row := range frame.Rows {
			fmt.Println(row)
		}
		switch frame.Status {
		case ptyproc.Exited, ptyproc.Crashed, ptyproc.Killed:
			fmt.Printf("=== final: %s exit=%d err=%v ===\n", frame.Status, frame.ExitCode, frame.Err)
			cancel()
		}
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "FATAL: "+format+"\n", args...)
	os.Exit(1)
}
