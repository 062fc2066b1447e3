// Package gitselect selects commands whose watched paths intersect the
// uncommitted changes in a git working tree, shelling out to the git
// binary the same way fnug's own process supervision shells out to
// child commands.
package gitselect

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fnug-run/fnug/internal/config"
	"github.com/fnug-run/fnug/internal/env"
	"github.com/fnug-run/fnug/internal/fnugerr"
	"github.com/fnug-run/fnug/internal/regexcache"
)

// gitEnvPrefixes lists git environment variables that must be stripped
// from the spawned git process. If fnug itself runs from inside a git
// hook, GIT_DIR and friends are set relative to the hook's invocation and
// leaking them into our own diff/status calls corrupts discovery.
var gitEnvPrefixes = []string{
	"GIT_DIR=",
	"GIT_WORK_TREE=",
	"GIT_INDEX_FILE=",
	"GIT_OBJECT_DIRECTORY=",
	"GIT_ALTERNATE_OBJECT_DIRECTORIES=",
	"GIT_COMMON_DIR=",
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(env.FilterByPrefixes(gitEnvPrefixes...), "GIT_TERMINAL_PROMPT=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// toplevel discovers the repository root above dir, empty string and no
// error if dir is not inside a git repository. If the git binary itself
// cannot be executed, that's a harder failure than "not a repo" and is
// reported as ErrGitUnavailable rather than silently swallowed.
func toplevel(dir string) (string, error) {
	out, err := run(dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %v", fnugerr.ErrGitUnavailable, err)
		}
		return "", nil
	}
	return out, nil
}

// changedPaths returns every path git considers changed relative to the
// repository root: the working-tree diff against HEAD plus untracked
// files not excluded by .gitignore.
func changedPaths(repoRoot string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	add := func(raw string) {
		for _, p := range strings.Split(raw, "\n") {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}

	diff, err := run(repoRoot, "diff", "--name-only", "HEAD")
	if err != nil {
		// A repo with no commits yet has no HEAD; treat as no diff rather
		// than failing selection outright.
		diff = ""
	}
	add(diff)

	untracked, err := run(repoRoot, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	add(untracked)

	return out, nil
}

// Select returns commands in tree whose resolved auto.git is true and
// whose resolved auto.path/auto.regex match at least one changed path,
// in the traversal order of config.AllCommands. If cwd is not inside a
// git repository, Select returns an empty, non-error result.
func Select(tree *config.CommandGroup, cwd string, cache *regexcache.Cache) ([]config.Command, error) {
	root, err := toplevel(cwd)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, nil
	}

	changed, err := changedPaths(root)
	if err != nil {
		return nil, err
	}

	var selected []config.Command
	for _, cmd := range config.AllCommands(tree) {
		if !cmd.Auto.Git || len(cmd.Auto.Path) == 0 {
			continue
		}
		if matchesAny(cmd, root, changed, cache) {
			selected = append(selected, cmd)
		}
	}
	return selected, nil
}

func matchesAny(cmd config.Command, repoRoot string, changed []string, cache *regexcache.Cache) bool {
	for _, rel := range changed {
		abs := filepath.Join(repoRoot, rel)
		for _, root := range cmd.Auto.Path {
			rootAbs := root
			if !filepath.IsAbs(rootAbs) {
				rootAbs = filepath.Join(cmd.Cwd, root)
			}
			if !underRoot(abs, rootAbs) {
				continue
			}
			if cache.MatchAny(cmd.Auto.Regex, rel) {
				return true
			}
		}
	}
	return false
}

// underRoot reports whether path is root itself or lies beneath it.
func underRoot(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && rel != "")
}
