// Package watcher is the long-lived stream that yields the set of
// commands to run: everything selected on the first tick (always + git),
// then whatever select_watch picks out of each debounced file-system
// batch thereafter.
package watcher

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/regexcache"
	"github.com/fnug-run/fnug/internal/selectengine"
	"github.com/fnug-run/fnug/internal/watch"
)

// Stream is a single-consumer async producer of command selections. Next
// must not be called concurrently by more than one goroutine.
type Stream struct {
	tree  *config.CommandGroup
	cwd   string
	cache *regexcache.Cache

	debouncer *watch.Debouncer
	out       chan []config.Command
	errs      chan error

	once   sync.Once
	cancel context.CancelFunc
}

// New builds a Stream over tree, watching every resolved auto.path root
// of commands with auto.watch = true.
func New(ctx context.Context, tree *config.CommandGroup, cwd string, cache *regexcache.Cache) (*Stream, error) {
	roots := watchRoots(tree)

	debouncer, err := watch.New(roots)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		tree:      tree,
		cwd:       cwd,
		cache:     cache,
		debouncer: debouncer,
		out:       make(chan []config.Command, 1),
		errs:      make(chan error, 1),
		cancel:    cancel,
	}

	go s.run(ctx)
	return s, nil
}

func watchRoots(tree *config.CommandGroup) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, c := range config.AllCommands(tree) {
		if !c.Auto.Watch {
			continue
		}
		for _, p := range c.Auto.Path {
			if !filepath.IsAbs(p) {
				p = filepath.Join(c.Cwd, p)
			}
			if seen[p] {
				continue
			}
			seen[p] = true
			roots = append(roots, p)
		}
	}
	return roots
}

func (s *Stream) run(ctx context.Context) {
	defer close(s.out)
	defer s.debouncer.Close()

	first := selectengine.Dedup(
		selectengine.SelectAllAlways(s.tree),
		firstGit(s.tree, s.cwd, s.cache),
	)
	select {
	case s.out <- first:
	case <-ctx.Done():
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case batch, ok := <-s.debouncer.Events:
			if !ok {
				return
			}
			selected := selectengine.SelectWatch(s.tree, batch, s.cache)
			if len(selected) == 0 {
				continue
			}
			select {
			case s.out <- selected:
			case <-ctx.Done():
				return
			}
		case err, ok := <-s.debouncer.Errors:
			if !ok {
				continue
			}
			select {
			case s.errs <- err:
			default:
			}
		}
	}
}

func firstGit(tree *config.CommandGroup, cwd string, cache *regexcache.Cache) []config.Command {
	selected, err := selectengine.SelectGit(tree, cwd, cache)
	if err != nil {
		return nil
	}
	return selected
}

// Next returns the channel of command selections. The first value
// (always + git) arrives as soon as the stream starts; subsequent values
// arrive once per debounced watch batch that selects at least one
// command.
func (s *Stream) Next() <-chan []config.Command {
	return s.out
}

// Errs surfaces non-fatal watch errors (e.g. a root that failed to
// watch); the stream keeps running after reporting one.
func (s *Stream) Errs() <-chan error {
	return s.errs
}

// Close tears down the debouncer and the underlying fsnotify watches,
// and stops the stream. Safe to call more than once.
func (s *Stream) Close() {
	s.once.Do(s.cancel)
}
