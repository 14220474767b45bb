package root

import (
	"context"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func newRoot(t *testing.T, s *state.State) func(args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { s.Close() })
	return func(args ...string) (string, error) {
		cmd, err := NewCmdRoot(s)
		if err != nil {
			t.Fatal(err)
		}
		return cmdtest.Execute(cmd, args...)
	}
}

func TestStatelessCommandsRunWithoutConfig(t *testing.T) {
	cmdtest.Home(t, "")
	s := &state.State{}
	run := newRoot(t, s)

	out, err := run("syntax")
	if err != nil {
		t.Fatalf("syntax: %v", err)
	}
	if !strings.Contains(out, "Examples:") {
		t.Fatalf("unexpected syntax output:\n%s", out)
	}
	if s.Store != nil {
		t.Fatal("syntax should not open the library")
	}
}

func TestSubcommandLoadsState(t *testing.T) {
	cmdtest.Home(t, cmdtest.DefaultConfig)
	s := &state.State{}
	run := newRoot(t, s)

	if _, err := run("prompt", "add", "Greeting", "--content", "Hello {name}"); err != nil {
		t.Fatal(err)
	}
	if s.Store == nil || s.WorkspaceName != "default" {
		t.Fatalf("expected loaded state, got %+v", s)
	}

	prompts, err := s.Store.Prompts(context.Background(), store.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(prompts))
	}
}

func TestWorkspaceOverride(t *testing.T) {
	cmdtest.Home(t, cmdtest.DefaultConfig)
	run := newRoot(t, &state.State{})

	if _, err := run("--workspace", "missing", "stats"); err == nil {
		t.Fatal("expected unknown workspace error")
	}
}

func TestUnconfiguredEditorAsksForInit(t *testing.T) {
	cmdtest.Home(t, "current_workspace: default\nworkspaces:\n  default:\n    database:\n      driver: sqlite\n")
	run := newRoot(t, &state.State{})

	_, err := run("stats")
	if err == nil || !strings.Contains(err.Error(), "editor") {
		t.Fatalf("expected missing editor error, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	cmdtest.Home(t, "")
	run := newRoot(t, &state.State{})

	out, err := run("--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "promptorg version") {
		t.Fatalf("unexpected version output %q", out)
	}
}
