package config

import (
	"strings"
	"testing"
)

func TestResolveInheritsAutoAndCwd(t *testing.T) {
	root := rawGroup{
		Name: "root",
		Cwd:  "project",
		Auto: &rawAuto{
			Watch: boolPtr(true),
			Path:  []string{"src"},
		},
		Children: []rawGroup{
			{
				Name: "backend",
				Cwd:  "backend",
				Auto: &rawAuto{
					Path:  []string{"internal"},
					Regex: []string{`\.go$`},
				},
				Commands: []rawCommand{
					{Name: "lint", Cmd: "golangci-lint run"},
				},
			},
		},
	}

	tree, err := Resolve(root, "/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if tree.Cwd != "/repo/project" {
		t.Errorf("root cwd = %q, want /repo/project", tree.Cwd)
	}
	child := tree.Children[0]
	if child.Cwd != "/repo/project/backend" {
		t.Errorf("child cwd = %q, want /repo/project/backend", child.Cwd)
	}
	if !child.Auto.Watch {
		t.Error("child should inherit watch=true from root")
	}

	cmd := child.Commands[0]
	if !cmd.Auto.Watch {
		t.Error("command should inherit watch=true")
	}
	wantPath := []string{"src", "internal"}
	if strings.Join(cmd.Auto.Path, ",") != strings.Join(wantPath, ",") {
		t.Errorf("command auto.path = %v, want %v (parent-first union)", cmd.Auto.Path, wantPath)
	}
	if len(cmd.Auto.Regex) != 1 || cmd.Auto.Regex[0] != `\.go$` {
		t.Errorf("command auto.regex = %v, want [\\.go$]", cmd.Auto.Regex)
	}
}

func TestResolveExplicitFalseOverridesInheritedTrue(t *testing.T) {
	root := rawGroup{
		Name: "root",
		Auto: &rawAuto{Watch: boolPtr(true)},
		Children: []rawGroup{
			{Name: "quiet", Auto: &rawAuto{Watch: boolPtr(false)}},
		},
	}

	tree, err := Resolve(root, "/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tree.Children[0].Auto.Watch {
		t.Error("explicit watch=false should override inherited true")
	}
}

func TestResolveDuplicateIDIsRejected(t *testing.T) {
	root := rawGroup{
		Name: "root",
		ID:   "dup",
		Children: []rawGroup{
			{Name: "child", ID: "dup"},
		},
	}
	if _, err := Resolve(root, "/repo"); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestResolveRejectsEmptyName(t *testing.T) {
	if _, err := Resolve(rawGroup{}, "/repo"); err == nil {
		t.Fatal("expected error for empty group name")
	}

	root := rawGroup{
		Name:     "root",
		Commands: []rawCommand{{Cmd: "echo hi"}},
	}
	if _, err := Resolve(root, "/repo"); err == nil {
		t.Fatal("expected error for empty command name")
	}
}

func TestResolveAssignsUniqueGeneratedIDs(t *testing.T) {
	root := rawGroup{
		Name:     "root",
		Commands: []rawCommand{{Name: "a", Cmd: "echo a"}, {Name: "b", Cmd: "echo b"}},
	}
	tree, err := Resolve(root, "/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if tree.Commands[0].ID == "" || tree.Commands[1].ID == "" {
		t.Fatal("generated ids must not be empty")
	}
	if tree.Commands[0].ID == tree.Commands[1].ID {
		t.Fatal("generated ids must be unique")
	}
}

func TestAllCommandsPreOrder(t *testing.T) {
	root := rawGroup{
		Name:     "root",
		Commands: []rawCommand{{Name: "root-cmd", Cmd: "echo root"}},
		Children: []rawGroup{
			{Name: "a", Commands: []rawCommand{{Name: "a-cmd", Cmd: "echo a"}}},
			{Name: "b", Commands: []rawCommand{{Name: "b-cmd", Cmd: "echo b"}}},
		},
	}
	tree, err := Resolve(root, "/repo")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var names []string
	for _, c := range AllCommands(tree) {
		names = append(names, c.Name)
	}
	want := "root-cmd,a-cmd,b-cmd"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("AllCommands order = %q, want %q", got, want)
	}
}

func boolPtr(b bool) *bool { return &b }
