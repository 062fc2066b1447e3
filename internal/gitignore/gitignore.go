// Package gitignore manages fnug's own block inside a repo's .gitignore,
// keeping the run-lock directory out of version control.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fnug-run/fnug/internal/markers"
)

func block() string {
	return fmt.Sprintf(`%s
/.fnug/
%s`, markers.Start, markers.End)
}

// Remove removes the fnug block from .gitignore.
func Remove(repoDir string) error {
	path := filepath.Join(repoDir, ".gitignore")

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	content := string(existing)
	if !strings.Contains(content, markers.Start) {
		return nil
	}

	start := strings.Index(content, markers.Start)
	end := strings.Index(content, markers.End)
	if end == -1 {
		return fmt.Errorf(".gitignore: found start marker but no end marker")
	}
	end += len(markers.End)

	before := content[:start]
	after := content[end:]
	after = strings.TrimPrefix(after, "\n")
	result := strings.TrimRight(before, "\n")
	if result != "" && after != "" {
		result += "\n"
	}
	result += after
	if result != "" && !strings.HasSuffix(result, "\n") {
		result += "\n"
	}

	if err := os.WriteFile(path, []byte(result), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}

// Install adds the fnug gitignore entries to .gitignore, creating the
// file if needed. Idempotent: re-running replaces the block in place.
func Install(repoDir string) error {
	path := filepath.Join(repoDir, ".gitignore")

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	content, err := markers.Insert(string(existing), block(), "")
	if err != nil {
		return fmt.Errorf(".gitignore: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
