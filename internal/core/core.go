// Package core is the Core Facade: it owns a resolved config tree, the
// working directory it was loaded against, and its own regex cache, and
// exposes the operations the CLI (and, out of scope here, the
// TUI) drive the engine through.
package core

import (
	"context"
	"log/slog"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/regexcache"
	"github.com/fnug-run/fnug/internal/selectengine"
	"github.com/fnug-run/fnug/internal/watcher"
)

// Core owns one resolved command tree.
type Core struct {
	tree  *config.CommandGroup
	cwd   string
	cache *regexcache.Cache
}

// FromGroup wraps an already-built tree, for callers (and tests) that
// construct a tree programmatically instead of loading a file.
func FromGroup(group *config.CommandGroup, cwd string) (*Core, error) {
	cache, err := regexcache.New(regexcache.DefaultSize)
	if err != nil {
		return nil, err
	}
	return &Core{tree: group, cwd: cwd, cache: cache}, nil
}

// FromConfigFile loads and resolves a config file. An empty path
// triggers upward discovery from cwd (see internal/config.Find).
func FromConfigFile(path, cwd string) (*Core, error) {
	tree, err := config.Load(path, cwd)
	if err != nil {
		return nil, err
	}
	return FromGroup(tree, cwd)
}

// AllCommands returns every command in the tree, pre-order.
func (c *Core) AllCommands() []config.Command {
	return config.AllCommands(c.tree)
}

// SelectedCommands returns the union of commands always selected and
// those selected by the current git diff, deduplicated, first occurrence
// in traversal order winning. A git selection error is logged and the
// always-selected commands are still returned.
func (c *Core) SelectedCommands() ([]config.Command, error) {
	always := selectengine.SelectAllAlways(c.tree)
	git, err := selectengine.SelectGit(c.tree, c.cwd, c.cache)
	if err != nil {
		slog.Warn("git selection failed", "error", err)
	}
	return selectengine.Dedup(always, git), nil
}

// Watch constructs and returns a Watcher Stream over this Core's tree.
func (c *Core) Watch(ctx context.Context) (*watcher.Stream, error) {
	return watcher.New(ctx, c.tree, c.cwd, c.cache)
}

// Config returns the resolved tree.
func (c *Core) Config() *config.CommandGroup {
	return c.tree
}

// Cwd returns the working directory this Core was constructed against.
func (c *Core) Cwd() string {
	return c.cwd
}
