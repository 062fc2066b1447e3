// Package ignore applies .fnugignore (gitignore syntax) to suppress
// file-watch events, the way a .gitignore keeps paths out of git status.
package ignore

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

const ignoreFile = ".fnugignore"

// Matcher checks paths against .fnugignore patterns rooted at one
// directory.
type Matcher struct {
	root string
	gi   *gitignore.GitIgnore
}

// Load reads .fnugignore from dir. A missing file yields a Matcher that
// ignores nothing.
func Load(dir string) (*Matcher, error) {
	path := filepath.Join(dir, ignoreFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Matcher{root: dir}, nil
	}

	gi, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, err
	}
	return &Matcher{root: dir, gi: gi}, nil
}

// Ignored reports whether the absolute path should be suppressed. Paths
// outside root are never matched, since .fnugignore patterns are
// relative to the root that declared them.
func (m *Matcher) Ignored(path string) bool {
	if m.gi == nil {
		return false
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil || rel == "." || len(rel) >= 2 && rel[:2] == ".." {
		return false
	}
	return m.gi.MatchesPath(rel)
}
