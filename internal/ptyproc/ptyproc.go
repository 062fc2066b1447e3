// Package ptyproc owns one child command spawned in a pseudo-terminal:
// its VT parser, reader/writer goroutines, scrollback, and the broadcast
// stream of rendered frames consumers subscribe to.
package ptyproc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/x/vt"
	"github.com/creack/pty"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/fnugerr"
)

// killGrace is how long Kill waits after SIGTERM before escalating to
// SIGKILL.
const killGrace = 2 * time.Second

// writerQueueSize bounds the writer channel; a caller flooding Write
// blocks once this many pending writes are queued, rather than growing
// memory without limit.
const writerQueueSize = 256

// State is a one-way state-machine snapshot.
type State int

const (
	Starting State = iota
	Running
	Exited
	Killed
	Crashed
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Killed:
		return "killed"
	case Crashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Frame is a snapshot of the rendered terminal, published to subscribers
// whenever the generation counter advances.
type Frame struct {
	Rows            []string
	CursorX         int
	CursorY         int
	CursorVisible   bool
	ScrollOffset    int
	ScrollbackDepth int
	Generation      uint64
	Status          State
	ExitCode        int
	Err             error
}

// Process owns one child command running inside a PTY.
type Process struct {
	cmd *exec.Cmd
	pty *os.File

	parserMu sync.Mutex
	emu      *vt.SafeEmulator
	cols     int
	rows     int

	scrollback    []string
	scrollbackMu  sync.Mutex
	scrollOffset  int
	maxScrollback int
	prevLines     []string // last rendered screen, read/written by readLoop only

	writeCh chan []byte

	stateMu  sync.Mutex
	state    State
	exitCode int
	lastErr  error

	generation atomic.Uint64
	broadcast  chan uint64

	readerDone chan struct{}
	writerDone chan struct{}
	waitDone   chan struct{}
	closeOnce  sync.Once

	mouseReporting atomic.Bool
	cursorHidden   atomic.Bool
}

// Spawn starts cmd.Cmd inside a PTY sized (cols, rows) with cwd/env taken
// from cmd.Cwd and the process environment.
func Spawn(c config.Command, cols, rows int) (*Process, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: invalid initial size %dx%d", fnugerr.ErrProcessSpawn, cols, rows)
	}

	execCmd := exec.Command("sh", "-c", c.Cmd)
	execCmd.Dir = c.Cwd
	setProcGroup(execCmd)

	ptmx, err := pty.StartWithSize(execCmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fnugerr.ErrProcessSpawn, err)
	}

	p := &Process{
		cmd:           execCmd,
		pty:           ptmx,
		emu:           vt.NewSafeEmulator(cols, rows),
		cols:          cols,
		rows:          rows,
		writeCh:       make(chan []byte, writerQueueSize),
		broadcast:     make(chan uint64, 1),
		readerDone:    make(chan struct{}),
		writerDone:    make(chan struct{}),
		waitDone:      make(chan struct{}),
		maxScrollback: 10000,
		state:         Running,
	}

	go p.readLoop()
	go p.writeLoop()
	go p.waitLoop()

	return p, nil
}

func (p *Process) setState(s State, exitCode int, err error) {
	p.stateMu.Lock()
	p.state = s
	p.exitCode = exitCode
	p.lastErr = err
	p.stateMu.Unlock()
}

// Status returns the current state-machine snapshot.
func (p *Process) Status() (State, int, error) {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	return p.state, p.exitCode, p.lastErr
}

func (p *Process) readLoop() {
	defer close(p.readerDone)
	buf := make([]byte, 32*1024)
	for {
		n, err := p.pty.Read(buf)
		if n > 0 {
			p.apply(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// decModeSeq matches a DECSET/DECRST private-mode sequence, e.g.
// "\x1b[?1000h" (set) or "\x1b[?25l" (reset).
var decModeSeq = regexp.MustCompile(`\x1b\[\?([0-9;]+)([hl])`)

// mouseModes are the DEC private modes that enable some form of mouse
// reporting: X10 (9), normal/button/any-event tracking (1000-1003),
// and the UTF-8/SGR/urxvt extended-coordinate encodings (1005, 1006,
// 1015, 1016).
var mouseModes = map[string]bool{
	"9": true, "1000": true, "1001": true, "1002": true, "1003": true,
	"1005": true, "1006": true, "1015": true, "1016": true,
}

// cursorVisibilityMode is DECTCEM, the private mode controlling whether
// the text cursor is drawn at all.
var cursorVisibilityMode = map[string]bool{"25": true}

// scanDECMode scans data for DECSET/DECRST sequences toggling any mode
// in watch. It returns the last observed on/off state for that group
// and whether any such sequence was present; callers should ignore the
// result when found is false rather than assume the mode just changed.
func scanDECMode(data []byte, watch map[string]bool) (enabled, found bool) {
	for _, m := range decModeSeq.FindAllSubmatch(data, -1) {
		set := string(m[2]) == "h"
		for _, param := range strings.Split(string(m[1]), ";") {
			if watch[param] {
				enabled, found = set, true
			}
		}
	}
	return enabled, found
}

// scanMouseMode is scanDECMode restricted to the mouse-reporting modes.
func scanMouseMode(data []byte) (enabled, found bool) {
	return scanDECMode(data, mouseModes)
}

// scrolledLines compares two consecutive same-size screens and returns
// the number of lines that scrolled off the top between them: the
// largest k such that prev's last rows-k lines now sit at the top of
// cur. Returns 0 when no such shift is detected (partial redraw,
// resize, or a screen clear rather than a scroll).
func scrolledLines(prev, cur []string) int {
	rows := len(cur)
	if rows == 0 || len(prev) != rows {
		return 0
	}
	for k := 1; k < rows; k++ {
		if linesEqual(prev[k:], cur[:rows-k]) {
			return k
		}
	}
	return 0
}

func linesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// apply feeds bytes to the parser under the parser lock, then publishes
// the new generation after releasing it. It also tracks the child's
// mouse-reporting and cursor-visibility modes from the raw DECSET/DECRST
// sequences it emits, since vt.SafeEmulator's surface doesn't expose a
// mode query. Rows that scrolled off the top of the live screen are
// detected by diffing the new render against the previous one and
// appended to the scrollback ring buffer, since vt.SafeEmulator only
// owns the visible screen.
func (p *Process) apply(data []byte) {
	if enabled, found := scanDECMode(data, mouseModes); found {
		p.mouseReporting.Store(enabled)
	}
	if visible, found := scanDECMode(data, cursorVisibilityMode); found {
		p.cursorHidden.Store(!visible)
	}

	p.parserMu.Lock()
	p.emu.Write(data)
	rendered := p.emu.Render()
	p.parserMu.Unlock()

	lines := splitLines(rendered)
	if k := scrolledLines(p.prevLines, lines); k > 0 {
		p.scrollbackMu.Lock()
		p.scrollback = append(p.scrollback, p.prevLines[:k]...)
		if excess := len(p.scrollback) - p.maxScrollback; excess > 0 {
			p.scrollback = p.scrollback[excess:]
		}
		p.scrollbackMu.Unlock()
	}
	p.prevLines = lines

	p.publish()
}

func (p *Process) publish() {
	gen := p.generation.Add(1)
	select {
	case <-p.broadcast:
	default:
	}
	select {
	case p.broadcast <- gen:
	default:
	}
}

func (p *Process) writeLoop() {
	defer close(p.writerDone)
	for data := range p.writeCh {
		if _, err := p.pty.Write(data); err != nil {
			return
		}
	}
}

func (p *Process) waitLoop() {
	err := p.cmd.Wait()
	close(p.waitDone)
	<-p.readerDone

	state, _, _ := p.Status()
	if state == Killed {
		p.publish()
		return
	}

	if err == nil {
		p.setState(Exited, 0, nil)
	} else if exitErr, ok := err.(*exec.ExitError); ok {
		p.setState(Exited, exitErr.ExitCode(), nil)
	} else {
		p.setState(Crashed, -1, fmt.Errorf("%w: %v", fnugerr.ErrProcessIO, err))
	}
	p.publish()
}

// Output returns a channel that receives the current rendered Frame every
// time the generation counter advances. The channel is length-1 and
// coalesces bursts: a slow consumer only ever sees the latest frame.
func (p *Process) Output(ctx context.Context) <-chan Frame {
	out := make(chan Frame, 1)
	go func() {
		defer close(out)
		var lastGen uint64
		for {
			select {
			case <-ctx.Done():
				return
			case gen, ok := <-p.broadcast:
				if !ok {
					return
				}
				// Put the generation back so other Output subscribers
				// (and the next loop iteration via publish) still see it;
				// the channel is deliberately shared/lossy per §4.H.
				select {
				case p.broadcast <- gen:
				default:
				}
				if gen == lastGen {
					continue
				}
				lastGen = gen
				frame := p.render()
				select {
				case <-out:
				default:
				}
				select {
				case out <- frame:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

func (p *Process) render() Frame {
	p.parserMu.Lock()
	rendered := p.emu.Render()
	cur := p.emu.Cursor()
	rows := p.rows
	p.parserMu.Unlock()

	status, exitCode, err := p.Status()

	liveLines := splitLines(rendered)

	p.scrollbackMu.Lock()
	depth := len(p.scrollback)
	offset := p.scrollOffset
	viewLines := viewport(p.scrollback, liveLines, offset, rows)
	p.scrollbackMu.Unlock()

	return Frame{
		Rows:            viewLines,
		CursorX:         cur.X,
		CursorY:         cur.Y,
		CursorVisible:   offset == 0 && !p.cursorHidden.Load(),
		ScrollOffset:    offset,
		ScrollbackDepth: depth,
		Generation:      p.generation.Load(),
		Status:          status,
		ExitCode:        exitCode,
		Err:             err,
	}
}

// viewport returns the rows rows of history+live screen visible at the
// given scroll offset (0 = live screen, positive = that many lines back
// into scrollback).
func viewport(scrollback, live []string, offset, rows int) []string {
	if offset == 0 {
		return live
	}
	combined := append(append([]string(nil), scrollback...), live...)
	end := len(combined) - offset
	if end < 0 {
		end = 0
	}
	start := end - rows
	if start < 0 {
		start = 0
	}
	if end > len(combined) {
		end = len(combined)
	}
	return combined[start:end]
}

// Write enqueues bytes for delivery to the child, in order. Blocks if the
// writer queue (capacity 256) is full.
func (p *Process) Write(data []byte) error {
	select {
	case p.writeCh <- data:
		return nil
	case <-p.writerDone:
		return fmt.Errorf("%w: process not writable", fnugerr.ErrProcessIO)
	}
}

// Resize atomically resizes the PTY and the parser. Rejects non-positive
// dimensions.
func (p *Process) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: invalid size %dx%d", fnugerr.ErrProcessIO, cols, rows)
	}

	if err := pty.Setsize(p.pty, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return err
	}

	p.parserMu.Lock()
	p.emu.Resize(cols, rows)
	p.cols, p.rows = cols, rows
	p.parserMu.Unlock()

	p.publish()
	return nil
}

// Scroll adjusts the scroll offset by delta lines (positive scrolls
// toward older history), clamped to [0, scrollbackDepth].
func (p *Process) Scroll(delta int) {
	p.scrollbackMu.Lock()
	defer p.scrollbackMu.Unlock()
	p.scrollOffset = clamp(p.scrollOffset+delta, 0, len(p.scrollback))
}

// SetScroll is the absolute form of Scroll.
func (p *Process) SetScroll(rows int) {
	p.scrollbackMu.Lock()
	defer p.scrollbackMu.Unlock()
	p.scrollOffset = clamp(rows, 0, len(p.scrollback))
}

// Click emits an SGR mouse-click escape sequence if the child has
// enabled mouse reporting; otherwise it is a no-op.
func (p *Process) Click(x, y int) {
	if !p.mouseReporting.Load() {
		return
	}
	seq := fmt.Sprintf("\x1b[<0;%d;%dM", x+1, y+1)
	_ = p.Write([]byte(seq))
}

// Clear resets scrollback and the live screen, and tells the child to
// clear as well.
func (p *Process) Clear() {
	p.scrollbackMu.Lock()
	p.scrollback = nil
	p.scrollOffset = 0
	p.scrollbackMu.Unlock()
	_ = p.Write([]byte("\x1b[H\x1b[2J\x1b[3J"))
}

// CanFocus reports whether the command is interactive.
func (p *Process) CanFocus(c config.Command) bool {
	return c.Interactive
}

// Kill terminates the child: SIGTERM, then SIGKILL after killGrace if it
// hasn't exited. A child that already exited keeps its Exited (or
// Crashed) state and is not signaled. Idempotent; closes the PTY master
// and joins the reader/writer goroutines before returning.
func (p *Process) Kill() error {
	state, _, _ := p.Status()
	if state != Exited && state != Killed && state != Crashed {
		p.setState(Killed, -1, nil)

		pid := p.cmd.Process.Pid
		_ = terminate(pid)

		select {
		case <-p.waitDone:
		case <-time.After(killGrace):
			_ = forceKill(pid)
			<-p.waitDone
		}
	}

	p.closeOnce.Do(func() {
		close(p.writeCh)
		_ = p.pty.Close()
	})
	<-p.readerDone
	<-p.writerDone
	return nil
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
