// Package hooks installs and removes fnug's own block inside a repo's
// git pre-commit hook, leaving any other content in the hook alone.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fnug-run/fnug/internal/markers"
)

const shebang = "#!/bin/sh"

func preCommitBlock() string {
	return fmt.Sprintf(`%s
fnug check
%s`, markers.Start, markers.End)
}

// Install installs or updates the fnug pre-commit hook in the given
// repo. Idempotent: re-running replaces the existing block in place.
func Install(repoDir string) error {
	hooksDir := filepath.Join(repoDir, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return fmt.Errorf("creating hooks dir: %w", err)
	}
	return installHook(hooksDir, "pre-commit", preCommitBlock())
}

// Remove removes the fnug block from the pre-commit hook. A no-op if
// fnug was never installed.
func Remove(repoDir string) error {
	hooksDir := filepath.Join(repoDir, ".git", "hooks")
	return removeHook(hooksDir, "pre-commit")
}

func removeHook(hooksDir, name string) error {
	path := filepath.Join(hooksDir, name)

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s hook: %w", name, err)
	}

	content := string(existing)
	if !strings.Contains(content, markers.Start) {
		return nil
	}

	start := strings.Index(content, markers.Start)
	end := strings.Index(content, markers.End)
	if end == -1 {
		return fmt.Errorf("%s hook: found start marker but no end marker", name)
	}
	end += len(markers.End)

	before := content[:start]
	after := content[end:]
	after = strings.TrimPrefix(after, "\n")
	result := strings.TrimRight(before, "\n") + after
	if result == "" || result == shebang {
		result = shebang + "\n"
	} else if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	if err := os.WriteFile(path, []byte(result), 0o755); err != nil {
		return fmt.Errorf("writing %s hook: %w", name, err)
	}
	return nil
}

func installHook(hooksDir, name, block string) error {
	path := filepath.Join(hooksDir, name)

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s hook: %w", name, err)
	}

	content, err := markers.Insert(string(existing), block, shebang)
	if err != nil {
		return fmt.Errorf("%s hook: %w", name, err)
	}

	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		return fmt.Errorf("writing %s hook: %w", name, err)
	}

	return nil
}
