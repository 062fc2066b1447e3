package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fnug-run/fnug/internal/fnugerr"
	"gopkg.in/yaml.v3"
)

// candidateNames is the discovery order from §4.B/§6, tried in every
// directory from cwd up to the filesystem root.
var candidateNames = []string{".fnug.yaml", ".fnug.yml", ".fnug.json"}

// Find locates the config file to load: if path is non-empty it is used
// exactly (after checking it exists), otherwise the directories from
// start upward are searched in candidateNames order.
func Find(path, start string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %s", fnugerr.ErrConfigNotFound, path)
		}
		return filepath.Abs(path)
	}

	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range candidateNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %v found above %s", fnugerr.ErrConfigNotFound, candidateNames, start)
		}
		dir = parent
	}
}

// Load finds (or uses) a config file, parses it, and resolves inheritance.
// rootCwd is the process cwd at load time, used as the base for the tree's
// own cwd resolution.
func Load(path, rootCwd string) (*CommandGroup, error) {
	found, err := Find(path, rootCwd)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(found)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", fnugerr.ErrConfigNotFound, found, err)
	}

	raw, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", fnugerr.ErrConfigParse, found, err)
	}

	tree, err := Resolve(raw, rootCwd)
	if err != nil {
		return nil, err
	}
	if errs := Validate(tree); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", fnugerr.ErrConfigInvalid, errs)
	}
	return tree, nil
}

// parseDocument decodes a config document as JSON when it looks like a
// JSON object, otherwise as YAML (which is also a superset that accepts
// most simple JSON documents, but explicit JSON detection keeps error
// messages from the right parser).
func parseDocument(data []byte) (rawGroup, error) {
	trimmed := bytes.TrimSpace(data)
	var raw rawGroup
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return rawGroup{}, err
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return rawGroup{}, err
	}
	return raw, nil
}

// AsYAML serializes an already-resolved tree back to YAML, preserving
// field order (struct field order drives yaml.v3's encoder).
func AsYAML(group *CommandGroup) (string, error) {
	out, err := yaml.Marshal(group)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
