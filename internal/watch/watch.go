// Package watch wraps fsnotify into a debounced stream of path-change
// batches: the union of every distinct path touched within a sliding
// window collapses into a single emission.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fnug-run/fnug/internal/fnugerr"
	"github.com/fnug-run/fnug/internal/ignore"
)

// Window is the debounce period: events within this sliding window
// collapse into one batch.
const Window = 500 * time.Millisecond

// suppressedComponents are path segments that never produce a batch, even
// when a root is watched recursively through them.
var suppressedComponents = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

var suppressedSuffixes = []string{"~", ".swp", ".swx", "4913"}

func suppressed(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if suppressedComponents[part] {
			return true
		}
	}
	base := filepath.Base(path)
	for _, suffix := range suppressedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

// Batch is a set of distinct absolute paths that changed within one
// debounce window.
type Batch map[string]struct{}

// Debouncer watches a set of root directories recursively and emits a
// Batch on Events at most once per Window per quiet period.
type Debouncer struct {
	watcher  *fsnotify.Watcher
	roots    []string
	matchers []*ignore.Matcher

	Events chan Batch
	Errors chan error

	mu      sync.Mutex
	pending Batch
	timer   *time.Timer
	closed  bool
	closeMu sync.Mutex
	wg      sync.WaitGroup
}

// New creates a Debouncer watching roots recursively. A root that cannot
// be watched is reported once on Errors; the others are still watched.
// Each root's own .fnugignore (if present) suppresses events under it.
func New(roots []string) (*Debouncer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fnugerr.ErrWatchInit, err)
	}

	d := &Debouncer{
		watcher: w,
		roots:   roots,
		Events:  make(chan Batch, 1),
		Errors:  make(chan error, len(roots)+1),
		pending: make(Batch),
	}

	for _, root := range roots {
		m, err := ignore.Load(root)
		if err != nil {
			// A bad .fnugignore degrades to "ignore nothing" for this root
			// rather than failing watch setup entirely.
			d.Errors <- err
			m = &ignore.Matcher{}
		}
		d.matchers = append(d.matchers, m)
	}

	for _, root := range roots {
		if err := d.addRecursive(root); err != nil {
			d.Errors <- fmt.Errorf("%w: %s: %v", fnugerr.ErrWatchInit, root, err)
		}
	}

	d.wg.Add(1)
	go d.loop()

	return d, nil
}

func (d *Debouncer) ignoredByAny(path string) bool {
	for _, m := range d.matchers {
		if m != nil && m.Ignored(path) {
			return true
		}
	}
	return false
}

func (d *Debouncer) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && (suppressed(path) || d.ignoredByAny(path)) {
			return filepath.SkipDir
		}
		return d.watcher.Add(path)
	})
}

func (d *Debouncer) loop() {
	defer d.wg.Done()
	for {
		select {
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			d.handle(ev)
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			select {
			case d.Errors <- err:
			default:
			}
		}
	}
}

func (d *Debouncer) handle(ev fsnotify.Event) {
	if suppressed(ev.Name) || d.ignoredByAny(ev.Name) {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[ev.Name] = struct{}{}

	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			_ = d.addRecursive(ev.Name)
		}
	}

	if d.timer == nil {
		d.timer = time.AfterFunc(Window, d.flush)
	}
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	batch := d.pending
	d.pending = make(Batch)
	d.timer = nil
	d.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	select {
	case d.Events <- batch:
	default:
		// A previous batch hasn't been consumed yet; merge into it so no
		// path is lost rather than dropping events entirely.
		select {
		case old := <-d.Events:
			for p := range old {
				batch[p] = struct{}{}
			}
		default:
		}
		d.Events <- batch
	}
}

// Close tears down the underlying fsnotify watcher and stops emitting.
func (d *Debouncer) Close() error {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return nil
	}
	d.closed = true
	d.closeMu.Unlock()

	err := d.watcher.Close()
	d.wg.Wait()
	close(d.Events)
	close(d.Errors)
	return err
}
