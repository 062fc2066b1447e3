// Package config is the in-memory representation of a fnug command tree:
// the declarative CommandGroup/Command hierarchy, its Auto scheduling
// rules, and the inheritance pass that resolves cwd and auto rules from
// parent to child.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/fnug-run/fnug/internal/fnugerr"
	"github.com/google/uuid"
)

// rawAuto mirrors Auto but keeps each scalar as an optional so that an
// absent field in the source document is distinguishable from an explicit
// false — "unset" means "inherit from parent" (see mergeAuto).
type rawAuto struct {
	Watch  *bool    `yaml:"watch,omitempty" json:"watch,omitempty"`
	Git    *bool    `yaml:"git,omitempty" json:"git,omitempty"`
	Always *bool    `yaml:"always,omitempty" json:"always,omitempty"`
	Path   []string `yaml:"path,omitempty" json:"path,omitempty"`
	Regex  []string `yaml:"regex,omitempty" json:"regex,omitempty"`
}

// Auto is the resolved set of scheduling hints for a Command, after
// inheritance has collapsed every optional field to a concrete value.
type Auto struct {
	Watch  bool     `yaml:"watch"`
	Git    bool     `yaml:"git"`
	Always bool     `yaml:"always"`
	Path   []string `yaml:"path,omitempty"`
	Regex  []string `yaml:"regex,omitempty"`
}

// rawCommand is the document shape of a Command leaf before inheritance.
type rawCommand struct {
	ID          string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string   `yaml:"name" json:"name"`
	Cmd         string   `yaml:"cmd" json:"cmd"`
	Cwd         string   `yaml:"cwd,omitempty" json:"cwd,omitempty"`
	Interactive bool     `yaml:"interactive,omitempty" json:"interactive,omitempty"`
	Auto        *rawAuto `yaml:"auto,omitempty" json:"auto,omitempty"`
}

// rawGroup is the document shape of a CommandGroup node before inheritance.
type rawGroup struct {
	FnugVersion string       `yaml:"fnug_version,omitempty" json:"fnug_version,omitempty"`
	ID          string       `yaml:"id,omitempty" json:"id,omitempty"`
	Name        string       `yaml:"name" json:"name"`
	Cwd         string       `yaml:"cwd,omitempty" json:"cwd,omitempty"`
	Auto        *rawAuto     `yaml:"auto,omitempty" json:"auto,omitempty"`
	Commands    []rawCommand `yaml:"commands,omitempty" json:"commands,omitempty"`
	Children    []rawGroup   `yaml:"children,omitempty" json:"children,omitempty"`
}

// Command is a resolved leaf: a single shell command with fully inherited
// cwd and auto rules.
type Command struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Cmd         string `yaml:"cmd"`
	Cwd         string `yaml:"cwd"`
	Interactive bool   `yaml:"interactive,omitempty"`
	Auto        Auto   `yaml:"auto"`
}

// CommandGroup is a resolved internal node of the command tree.
type CommandGroup struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Cwd      string         `yaml:"cwd"`
	Auto     Auto           `yaml:"auto"`
	Commands []Command      `yaml:"commands,omitempty"`
	Children []CommandGroup `yaml:"children,omitempty"`
}

// newID synthesizes a random identifier for nodes that don't declare an
// explicit id.
func newID() string {
	return uuid.NewString()
}

// Resolve runs the single post-order inheritance walk described in §4.A:
// each node's cwd and auto rules are merged with its parent's resolved
// values before descending into children. rootCwd is the process cwd at
// load time, the base the document root's own cwd joins onto.
func Resolve(root rawGroup, rootCwd string) (*CommandGroup, error) {
	seen := make(map[string]bool)
	return resolveGroup(root, rootCwd, Auto{}, seen)
}

func resolveGroup(g rawGroup, parentCwd string, parentAuto Auto, seen map[string]bool) (*CommandGroup, error) {
	if g.Name == "" {
		return nil, fmt.Errorf("%w: group name is required", fnugerr.ErrConfigInvalid)
	}

	id := g.ID
	if id == "" {
		id = newID()
	} else if seen[id] {
		return nil, fmt.Errorf("%w: duplicate id %q", fnugerr.ErrConfigInvalid, id)
	}
	seen[id] = true

	cwd := joinCwd(parentCwd, g.Cwd)
	auto := mergeAuto(parentAuto, g.Auto)

	out := &CommandGroup{
		ID:   id,
		Name: g.Name,
		Cwd:  cwd,
		Auto: auto,
	}

	for _, rc := range g.Commands {
		cmd, err := resolveCommand(rc, cwd, auto, seen)
		if err != nil {
			return nil, err
		}
		out.Commands = append(out.Commands, *cmd)
	}

	for _, rg := range g.Children {
		child, err := resolveGroup(rg, cwd, auto, seen)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, *child)
	}

	return out, nil
}

func resolveCommand(c rawCommand, parentCwd string, parentAuto Auto, seen map[string]bool) (*Command, error) {
	if c.Name == "" {
		return nil, fmt.Errorf("%w: command name is required", fnugerr.ErrConfigInvalid)
	}
	if c.Cmd == "" {
		return nil, fmt.Errorf("%w: command %q: cmd is required", fnugerr.ErrConfigInvalid, c.Name)
	}

	id := c.ID
	if id == "" {
		id = newID()
	} else if seen[id] {
		return nil, fmt.Errorf("%w: duplicate id %q", fnugerr.ErrConfigInvalid, id)
	}
	seen[id] = true

	return &Command{
		ID:          id,
		Name:        c.Name,
		Cmd:         c.Cmd,
		Cwd:         joinCwd(parentCwd, c.Cwd),
		Interactive: c.Interactive,
		Auto:        mergeAuto(parentAuto, c.Auto),
	}, nil
}

// joinCwd joins a declared (possibly empty, possibly relative) cwd onto
// the parent's already-resolved absolute cwd.
func joinCwd(parentCwd, declared string) string {
	if declared == "" {
		return parentCwd
	}
	if filepath.IsAbs(declared) {
		return filepath.Clean(declared)
	}
	return filepath.Join(parentCwd, declared)
}

// mergeAuto applies the §3 inheritance rules: watch/git/always propagate
// down only when not explicitly set; path/regex are the union of parent
// and declared values, parent entries first.
func mergeAuto(parent Auto, declared *rawAuto) Auto {
	out := Auto{
		Watch:  parent.Watch,
		Git:    parent.Git,
		Always: parent.Always,
		Path:   append([]string(nil), parent.Path...),
		Regex:  append([]string(nil), parent.Regex...),
	}
	if declared == nil {
		return out
	}
	if declared.Watch != nil {
		out.Watch = *declared.Watch
	}
	if declared.Git != nil {
		out.Git = *declared.Git
	}
	if declared.Always != nil {
		out.Always = *declared.Always
	}
	out.Path = unionAppend(out.Path, declared.Path)
	out.Regex = unionAppend(out.Regex, declared.Regex)
	return out
}

// unionAppend appends entries from add that aren't already in base,
// preserving the order in which they first appear.
func unionAppend(base, add []string) []string {
	if len(add) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}
	out := base
	for _, v := range add {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// AllCommands returns every Command in the tree in pre-order traversal
// order, the canonical ordering used by every selector in this package.
func AllCommands(root *CommandGroup) []Command {
	var out []Command
	var walk func(g *CommandGroup)
	walk = func(g *CommandGroup) {
		out = append(out, g.Commands...)
		for i := range g.Children {
			walk(&g.Children[i])
		}
	}
	walk(root)
	return out
}
