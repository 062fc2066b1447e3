// Package fnugerr defines the typed sentinel errors shared across fnug's
// config, selection, and process components so callers can distinguish
// failure classes with errors.Is instead of string matching.
package fnugerr

import "errors"

var (
	// ErrConfigNotFound is returned when no config file is discovered above
	// cwd (search mode) or the caller-supplied path does not exist.
	ErrConfigNotFound = errors.New("fnug: config not found")
	// ErrConfigParse is returned when the config document is not valid
	// YAML/JSON.
	ErrConfigParse = errors.New("fnug: config parse error")
	// ErrConfigInvalid is returned for structural violations: duplicate
	// explicit ids, empty names, uncompilable regexes.
	ErrConfigInvalid = errors.New("fnug: config invalid")
	// ErrGitUnavailable is returned when the git binary cannot be run to
	// discover a repository. A directory outside any repository is not an
	// error: git selection is then simply empty.
	ErrGitUnavailable = errors.New("fnug: git repository not found")
	// ErrWatchInit is returned when a watched root does not exist or
	// cannot be monitored.
	ErrWatchInit = errors.New("fnug: could not watch path")
	// ErrProcessSpawn is returned when a PTY could not be allocated or the
	// child failed to exec.
	ErrProcessSpawn = errors.New("fnug: process spawn failed")
	// ErrProcessIO is returned on an unrecoverable PTY master read error.
	ErrProcessIO = errors.New("fnug: process io error")
	// ErrCancelled is returned when a consumer tears down a stream.
	ErrCancelled = errors.New("fnug: cancelled")
)
