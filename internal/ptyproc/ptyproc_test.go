package ptyproc

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/vt"

	"github.com/fnug-run/fnug/internal/config"
)

func waitForStatus(t *testing.T, p *Process, want State, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if status, _, _ := p.Status(); status == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	status, _, _ := p.Status()
	t.Fatalf("Status() = %v, want %v", status, want)
}

func TestSpawnRunsCommandAndExits(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "echo hello"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	waitForStatus(t, p, Exited, 3*time.Second)

	status, exitCode, procErr := p.Status()
	if status != Exited {
		t.Fatalf("Status() = %v, want Exited", status)
	}
	if exitCode != 0 {
		t.Errorf("exitCode = %d, want 0", exitCode)
	}
	if procErr != nil {
		t.Errorf("unexpected error: %v", procErr)
	}
}

func TestSpawnRejectsZeroSize(t *testing.T) {
	if _, err := Spawn(config.Command{Cmd: "echo hi"}, 0, 0); err == nil {
		t.Fatal("expected an error for zero-sized pty")
	}
}

func TestOutputReceivesRenderedFrame(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "printf hello"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	found := false
	for frame := range p.Output(ctx) {
		if strings.Contains(strings.Join(frame.Rows, "\n"), "hello") {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a frame containing \"hello\"")
	}
}

func TestKillTerminatesLongRunningProcess(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "sleep 60"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- p.Kill() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Kill: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Kill did not return in time")
	}

	status, _, _ := p.Status()
	if status != Killed {
		t.Fatalf("Status() = %v, want Killed", status)
	}
}

func TestKillIsIdempotent(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "sleep 60"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if err := p.Kill(); err != nil {
		t.Fatalf("first Kill: %v", err)
	}
	if err := p.Kill(); err != nil {
		t.Fatalf("second Kill: %v", err)
	}
}

func TestResizeRejectsNonPositive(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "sleep 1"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	if err := p.Resize(0, 24); err == nil {
		t.Fatal("expected an error resizing to zero columns")
	}
}

func TestScrollbackCapturesLinesScrolledOffScreen(t *testing.T) {
	const total = 30
	cmd := fmt.Sprintf(`for i in $(seq 1 %d); do echo "line$i"; sleep 0.02; done`, total)
	p, err := Spawn(config.Command{Cmd: cmd}, 40, 6)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	waitForStatus(t, p, Exited, 5*time.Second)

	frame := p.render()
	if frame.ScrollbackDepth == 0 {
		t.Fatal("expected non-zero scrollback after output taller than the screen")
	}
	if frame.ScrollbackDepth > total {
		t.Fatalf("ScrollbackDepth = %d, want <= %d", frame.ScrollbackDepth, total)
	}

	// Scrolling all the way back should reveal the earliest output, not
	// a gap or duplicate caused by miscounting the scroll.
	p.SetScroll(frame.ScrollbackDepth)
	oldest := p.render()
	if !strings.Contains(strings.Join(oldest.Rows, "\n"), "line1") {
		t.Errorf("oldest view = %q, want it to contain the earliest output", oldest.Rows)
	}
	if oldest.ScrollOffset != frame.ScrollbackDepth {
		t.Errorf("ScrollOffset = %d, want %d", oldest.ScrollOffset, frame.ScrollbackDepth)
	}
	if oldest.CursorVisible {
		t.Error("CursorVisible should be false while scrolled back into history")
	}

	// Scrolling back to the live screen should show the tail end again.
	p.SetScroll(0)
	latest := p.render()
	if !strings.Contains(strings.Join(latest.Rows, "\n"), fmt.Sprintf("line%d", total)) {
		t.Errorf("live view = %q, want it to contain the most recent output", latest.Rows)
	}
}

func TestScrollClampsToScrollbackDepth(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "echo hi"}, 40, 6)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()
	waitForStatus(t, p, Exited, 3*time.Second)

	p.Scroll(1000)
	frame := p.render()
	if frame.ScrollOffset != frame.ScrollbackDepth {
		t.Errorf("ScrollOffset = %d, want clamped to ScrollbackDepth %d", frame.ScrollOffset, frame.ScrollbackDepth)
	}

	p.Scroll(-1000)
	frame = p.render()
	if frame.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %d, want 0 after scrolling past the live screen", frame.ScrollOffset)
	}
}

func TestScanMouseModeDetectsSetAndReset(t *testing.T) {
	if enabled, found := scanMouseMode([]byte("\x1b[?1006h")); !found || !enabled {
		t.Errorf("scanMouseMode(set) = (%v, %v), want (true, true)", enabled, found)
	}
	if enabled, found := scanMouseMode([]byte("\x1b[?1000;1006h")); !found || !enabled {
		t.Errorf("scanMouseMode(multi-param set) = (%v, %v), want (true, true)", enabled, found)
	}
	if enabled, found := scanMouseMode([]byte("\x1b[?1006l")); !found || enabled {
		t.Errorf("scanMouseMode(reset) = (%v, %v), want (false, true)", enabled, found)
	}
	if _, found := scanMouseMode([]byte("\x1b[?25h")); found {
		t.Error("scanMouseMode should ignore unrelated DEC private modes like cursor-visibility (25)")
	}
	if _, found := scanMouseMode([]byte("plain text, no escapes")); found {
		t.Error("scanMouseMode should report found=false when no mode sequence is present")
	}
}

func TestClickIsNoOpUntilMouseReportingEnabled(t *testing.T) {
	// Built directly rather than via Spawn: Spawn starts a writeLoop
	// goroutine that drains writeCh concurrently, which would race this
	// test's own read from the same channel.
	p := &Process{
		emu:     vt.NewSafeEmulator(40, 10),
		cols:    40,
		rows:    10,
		writeCh: make(chan []byte, 4),
	}

	p.Click(1, 1) // no mouse mode observed yet: must not write to the child
	select {
	case data := <-p.writeCh:
		t.Fatalf("Click wrote %q before any mouse-reporting mode was observed", data)
	default:
	}

	p.apply([]byte("\x1b[?1006h"))
	p.Click(2, 3)
	select {
	case data := <-p.writeCh:
		if string(data) != "\x1b[<0;3;4M" {
			t.Errorf("Click wrote %q, want an SGR mouse sequence for (2,3)", data)
		}
	default:
		t.Fatal("Click did not write a mouse sequence once reporting was enabled")
	}
}

func TestCanFocusReflectsInteractiveFlag(t *testing.T) {
	p, err := Spawn(config.Command{Cmd: "sleep 1"}, 80, 24)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Kill()

	if p.CanFocus(config.Command{Interactive: false}) {
		t.Error("CanFocus should be false for a non-interactive command")
	}
	if !p.CanFocus(config.Command{Interactive: true}) {
		t.Error("CanFocus should be true for an interactive command")
	}
}
