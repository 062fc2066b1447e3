package config

import (
	"fmt"
	"regexp"
	"slices"
)

// Validate checks an already-resolved tree for semantic errors beyond what
// Resolve itself catches (duplicate ids and empty names fail resolution
// directly). Returns a list of human-readable error strings, one per
// issue; an empty slice means the tree is valid.
func Validate(tree *CommandGroup) []string {
	var errs []string
	walkValidate(tree, nil, &errs)
	return errs
}

// walkValidate reports each bad pattern once, at the node that declares
// it: patterns inherited from the parent's resolved regexes are skipped.
func walkValidate(g *CommandGroup, inherited []string, errs *[]string) {
	for _, pattern := range g.Auto.Regex {
		if slices.Contains(inherited, pattern) {
			continue
		}
		if _, err := regexp.Compile(pattern); err != nil {
			*errs = append(*errs, fmt.Sprintf("group %q: invalid regex %q: %v", g.Name, pattern, err))
		}
	}

	for _, c := range g.Commands {
		for _, pattern := range c.Auto.Regex {
			if slices.Contains(g.Auto.Regex, pattern) {
				continue
			}
			if _, err := regexp.Compile(pattern); err != nil {
				*errs = append(*errs, fmt.Sprintf("command %q: invalid regex %q: %v", c.Name, pattern, err))
			}
		}
	}

	for i := range g.Children {
		walkValidate(&g.Children[i], g.Auto.Regex, errs)
	}
}
