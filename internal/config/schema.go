package config

import "encoding/json"

// autoSchema is shared between the group and command shapes since both
// carry the same auto properties.
func autoSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"description":          "Scheduling hints. Unset boolean fields inherit from the parent group; path and regex are unioned with the parent's resolved values.",
		"properties": map[string]any{
			"watch": map[string]any{
				"type":        "boolean",
				"description": "Re-run this command when a watched file-system event matches its path/regex rules.",
			},
			"git": map[string]any{
				"type":        "boolean",
				"description": "Select this command when uncommitted git changes match its path/regex rules. Only effective once at least one auto.path is present after inheritance.",
			},
			"always": map[string]any{
				"type":        "boolean",
				"description": "Always select this command, regardless of git or watch state.",
			},
			"path": map[string]any{
				"type":        "array",
				"description": "Relative directory roots to observe. Inherited as a union with the parent's resolved paths.",
				"items":       map[string]any{"type": "string"},
			},
			"regex": map[string]any{
				"type":        "array",
				"description": "Patterns matched (non-anchored, partial match) against changed paths under a path root: relative to the repository root for git selection, relative to the path root for watch selection. Inherited as a union with the parent's resolved regexes.",
				"items":       map[string]any{"type": "string"},
			},
		},
	}
}

// Schema returns a JSON Schema (draft 2020-12) describing .fnug.yaml as
// indented JSON, for the `schema` CLI subcommand and editor tooling.
func Schema() []byte {
	commandSchema := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name", "cmd"},
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "description": "Stable identifier, unique across the tree. Auto-generated when omitted."},
			"name":        map[string]any{"type": "string", "description": "Human label shown in the command tree."},
			"cmd":         map[string]any{"type": "string", "description": "Shell command line executed inside a PTY."},
			"cwd":         map[string]any{"type": "string", "description": "Working directory, relative to the parent's resolved cwd."},
			"interactive": map[string]any{"type": "boolean", "description": "Whether the PTY accepts stdin keystrokes from the UI."},
			"auto":        autoSchema(),
		},
	}

	schema := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                ".fnug.yaml",
		"description":          "Configuration for fnug: a declarative tree of lint/test commands auto-selected by git diff, file-watch events, or an unconditional always flag.",
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name"},
		"properties": map[string]any{
			"fnug_version": map[string]any{
				"type":        "string",
				"description": "Reserved for future compatibility checks. Currently \"0.1.0\".",
			},
			"id": map[string]any{
				"type":        "string",
				"description": "Stable identifier, unique across the tree. Auto-generated when omitted.",
			},
			"name": map[string]any{
				"type":        "string",
				"description": "Human label shown in the command tree.",
			},
			"cwd": map[string]any{
				"type":        "string",
				"description": "Working directory, relative to the parent's resolved cwd. The document root's cwd is relative to the process cwd.",
			},
			"auto": autoSchema(),
			"commands": map[string]any{
				"type":        "array",
				"description": "Leaf commands belonging directly to this group.",
				"items":       commandSchema,
			},
			"children": map[string]any{
				"type":        "array",
				"description": "Nested command groups, resolved with this group as their parent.",
				"items":       map[string]any{"$ref": "#"},
			},
		},
	}

	out, _ := json.MarshalIndent(schema, "", "  ")
	return out
}
