package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, doc string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ".fnug.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFromConfigFileAndAllCommands(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "name: root\ncommands:\n  - name: lint\n    cmd: echo lint\n  - name: unit\n    cmd: echo unit\n")

	c, err := FromConfigFile("", dir)
	if err != nil {
		t.Fatalf("FromConfigFile: %v", err)
	}

	cmds := c.AllCommands()
	if len(cmds) != 2 {
		t.Fatalf("AllCommands() = %+v, want 2 commands", cmds)
	}
	if c.Cwd() != dir {
		t.Errorf("Cwd() = %q, want %q", c.Cwd(), dir)
	}
}

func TestSelectedCommandsIncludesAlways(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "name: root\ncommands:\n  - name: unit\n    cmd: echo unit\n    auto: {always: true}\n")

	c, err := FromConfigFile("", dir)
	if err != nil {
		t.Fatalf("FromConfigFile: %v", err)
	}

	selected, err := c.SelectedCommands()
	if err != nil {
		t.Fatalf("SelectedCommands: %v", err)
	}
	if len(selected) != 1 || selected[0].Name != "unit" {
		t.Fatalf("SelectedCommands() = %+v, want [unit]", selected)
	}
}
