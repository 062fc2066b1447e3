// Package regexcache memoizes compiled regular expressions so the Git
// Selector and Selection Engine don't re-compile the same pattern text on
// every changed path they test. It is owned by a single Core Facade
// instance, never a package-level global, so independent Core instances
// (as tests construct) never share cache state.
package regexcache

import (
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of distinct patterns kept compiled at once.
// Config trees rarely carry more than a few dozen distinct regexes, so
// this comfortably avoids eviction churn in normal use.
const DefaultSize = 256

// Cache is a mutex-guarded LRU of pattern text to compiled *regexp.Regexp,
// plus the compile error for patterns that fail to compile (cached too, so
// a command with a broken pattern doesn't pay compile cost on every tick).
type Cache struct {
	mu    sync.Mutex
	inner *lru.Cache[string, entry]
}

type entry struct {
	re  *regexp.Regexp
	err error
}

// New constructs a Cache holding up to size compiled patterns.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	inner, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner}, nil
}

// Compile returns the compiled form of pattern, compiling and caching it
// on first use. A previously cached compile error is returned again
// without retrying.
func (c *Cache) Compile(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	if e, ok := c.inner.Get(pattern); ok {
		c.mu.Unlock()
		return e.re, e.err
	}
	c.mu.Unlock()

	re, err := regexp.Compile(pattern)

	c.mu.Lock()
	c.inner.Add(pattern, entry{re: re, err: err})
	c.mu.Unlock()

	return re, err
}

// MatchAny reports whether path matches at least one of patterns, using
// cached compiles. A pattern that fails to compile is treated as a
// non-match rather than aborting the whole check.
func (c *Cache) MatchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		re, err := c.Compile(p)
		if err != nil {
			continue
		}
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
