// Package selectengine maps a batch of changed paths, a git diff, or an
// unconditional "always" pass to the set of Commands that should run.
package selectengine

import (
	"path/filepath"
	"strings"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/gitselect"
	"github.com/fnug-run/fnug/internal/regexcache"
	"github.com/fnug-run/fnug/internal/watch"
)

// SelectAllAlways returns every command with auto.always = true, in
// traversal order.
func SelectAllAlways(tree *config.CommandGroup) []config.Command {
	var out []config.Command
	for _, c := range config.AllCommands(tree) {
		if c.Auto.Always {
			out = append(out, c)
		}
	}
	return out
}

// SelectGit delegates to gitselect.Select.
func SelectGit(tree *config.CommandGroup, cwd string, cache *regexcache.Cache) ([]config.Command, error) {
	return gitselect.Select(tree, cwd, cache)
}

// SelectWatch returns every watch-enabled command whose resolved
// auto.path/auto.regex match at least one path in batch.
func SelectWatch(tree *config.CommandGroup, batch watch.Batch, cache *regexcache.Cache) []config.Command {
	var out []config.Command
	for _, c := range config.AllCommands(tree) {
		if !c.Auto.Watch || len(c.Auto.Path) == 0 {
			continue
		}
		if matchesBatch(c, batch, cache) {
			out = append(out, c)
		}
	}
	return out
}

func matchesBatch(c config.Command, batch watch.Batch, cache *regexcache.Cache) bool {
	for changed := range batch {
		abs, err := filepath.Abs(changed)
		if err != nil {
			continue
		}
		if real, err := filepath.EvalSymlinks(abs); err == nil {
			abs = real
		}
		for _, root := range c.Auto.Path {
			rootAbs := root
			if !filepath.IsAbs(rootAbs) {
				rootAbs = filepath.Join(c.Cwd, root)
			}
			rel, err := filepath.Rel(rootAbs, abs)
			if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
				continue
			}
			if rel == "." {
				rel = filepath.Base(abs)
			}
			if cache.MatchAny(c.Auto.Regex, rel) {
				return true
			}
		}
	}
	return false
}

// Dedup returns lists concatenated and deduplicated by Command.ID,
// keeping the first occurrence in traversal order (§9).
func Dedup(lists ...[]config.Command) []config.Command {
	seen := make(map[string]bool)
	var out []config.Command
	for _, list := range lists {
		for _, c := range list {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}
