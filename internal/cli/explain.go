package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const explainText = `fnug — Auto-Selecting Lint/Test Command Runner

PURPOSE
  fnug reads a declarative tree of commands (.fnug.yaml/.fnug.json) and
  decides which ones to run without you naming them: a command is
  selected when its auto rules say so — git diff touched one of its
  paths, a watched file changed, or it's simply marked always-on.

  The full interactive experience (a TUI multiplexing every selected
  command's live PTY output into its own pane) is out of scope for this
  binary. What ships here is the engine plus a headless CLI shim:
  select, run, and report, good enough for CI and for scripting.

COMMANDS
  run         Resolve the config, print the currently selected commands,
              and execute them concurrently, each inside its own PTY,
              streaming line-prefixed output until they all exit.
              With -w/--watch, stays alive: re-selects and re-runs
              commands whenever the Watch Debouncer reports a batch of
              changed paths, instead of exiting after the first pass.
  check       Like run, but exits non-zero if any selected command's
              process exits non-zero. Intended for CI and for a
              pre-commit hook.
  validate    Load the config tree and report every bad regex, or the
              first missing name or duplicate id, or print "valid".
  schema      Print the JSON Schema (draft 2020-12) for .fnug.yaml.
  hook install/remove
              Install or remove a fnug check invocation in this repo's
              pre-commit hook, preserving any existing hook content.
              Safe to re-run.
  explain     Print this reference.
  version     Print the build version.

CONFIG FORMAT (.fnug.yaml)
  fnug_version: "0.1.0"
  name: myproject                    # required at every node
  cwd: .                              # resolved relative to the parent
  auto:
    watch: true                       # re-run on matching file-watch events
    git: true                         # select on matching git diff
    always: false                     # always select, regardless of diff/watch
    path: ["backend"]                 # roots auto.git/auto.watch match against
    regex: ["\\.go$"]                 # matched against the changed path
  commands:
    - name: lint
      cmd: golangci-lint run ./...
      auto: {always: true}
    - name: unit
      cmd: go test ./...
      cwd: backend
      auto: {git: true, path: ["backend"], regex: ["_test\\.go$"]}
  children:
    - name: frontend
      cwd: frontend
      auto: {path: ["."]}
      commands:
        - name: jest
          cmd: npm test
          auto: {watch: true, regex: ["\\.tsx?$"]}

CONFIG SEMANTICS
  - Every group and command needs a name; ids are optional and
    auto-generated when omitted, but must be unique when given.
  - auto.watch/auto.git/auto.always are optional booleans: unset means
    "inherit the parent's resolved value." An explicit false always
    overrides an inherited true.
  - auto.path and auto.regex are inherited as a union with the parent's
    resolved values, not a replacement.
  - cwd is resolved relative to the parent's already-resolved cwd; the
    document root's cwd is relative to the process's working directory.
  - Discovery searches upward from the current directory for
    .fnug.yaml, .fnug.yml, then .fnug.json, unless -p/--path is given.
  - A .fnugignore file (gitignore syntax) at the top of a watched root
    suppresses matching paths under that root from file-watch events.

CONSTRAINTS
  - Exactly one fnug run/check may hold the run lock for a given
    repository at a time; a second invocation fails fast rather than
    racing the same PTY processes.
  - Commands never retry themselves; auto rules only decide selection,
    not scheduling order beyond the tree's traversal order.`

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Print agent-friendly reference for fnug",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(explainText)
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
