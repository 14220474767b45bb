package template

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/templater"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func newState(t *testing.T) *state.State {
	t.Helper()
	st := cmdtest.NewState(t)
	ctx := context.Background()
	for _, p := range []store.NewPrompt{
		{Title: "Greeting", Content: "Hello {name}, welcome to {place}", IsTemplate: true},
		{Title: "Broken", Content: "Hello {name"},
	} {
		if _, err := st.Store.CreatePrompt(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	return st
}

func run(t *testing.T, st *state.State, args ...string) string {
	t.Helper()
	out, err := cmdtest.Execute(NewCmdTemplate(st), args...)
	if err != nil {
		t.Fatalf("template %v: %v\n%s", args, err, out)
	}
	return out
}

func TestListStarters(t *testing.T) {
	st := newState(t)
	out := run(t, st, "ls")
	if !strings.Contains(out, "email") || !strings.Contains(out, "Professional Email") {
		t.Fatalf("unexpected starters:\n%s", out)
	}
	if !strings.Contains(out, "variables: subject, recipient_name") {
		t.Fatalf("expected variable names:\n%s", out)
	}
}

func TestVars(t *testing.T) {
	st := newState(t)

	out := run(t, st, "vars", "1")
	if !strings.Contains(out, "{name}  text, required") || !strings.Contains(out, "{place}") {
		t.Fatalf("unexpected vars:\n%s", out)
	}

	out = run(t, st, "vars", "email")
	if !strings.Contains(out, "{purpose}  choice, required, one of discuss a project|") {
		t.Fatalf("unexpected starter vars:\n%s", out)
	}
	if !strings.Contains(out, `default "Please let me know if you have any questions."`) {
		t.Fatalf("expected default value:\n%s", out)
	}

	if _, err := cmdtest.Execute(NewCmdTemplate(st), "vars", "nope"); !errors.Is(err, templater.ErrTemplateNotFound) {
		t.Fatalf("expected template not found, got %v", err)
	}
	if _, err := cmdtest.Execute(NewCmdTemplate(st), "vars", "99"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected prompt not found, got %v", err)
	}
}

func TestUse(t *testing.T) {
	st := newState(t)

	out := run(t, st, "use", "1", "--set", "name=Ada", "--set", "place=Paris")
	if out != "Hello Ada, welcome to Paris\n" {
		t.Fatalf("unexpected render %q", out)
	}

	_, err := cmdtest.Execute(NewCmdTemplate(st), "use", "1", "--set", "name=Ada")
	var verr *templater.ValidationError
	if !errors.As(err, &verr) || !strings.Contains(err.Error(), "place") {
		t.Fatalf("expected validation error naming place, got %v", err)
	}

	out = run(t, st, "use", "1", "--preview", "--set", "name=Ada")
	if out != "Hello Ada, welcome to [place]\n" {
		t.Fatalf("unexpected preview %q", out)
	}
}

func TestCheck(t *testing.T) {
	st := newState(t)

	if out := run(t, st, "check", "1"); !strings.Contains(out, `"Greeting" looks good`) {
		t.Fatalf("unexpected check output %q", out)
	}

	out, err := cmdtest.Execute(NewCmdTemplate(st), "check", "2")
	if err == nil {
		t.Fatal("expected problems for unbalanced braces")
	}
	if !strings.Contains(out, "Unmatched braces") {
		t.Fatalf("expected brace problem, got %q", out)
	}
}
