package views

import (
	"context"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func run(t *testing.T, st *state.State, args ...string) string {
	t.Helper()
	out, err := cmdtest.Execute(NewCmdViews(st), args...)
	if err != nil {
		t.Fatalf("view %v: %v\n%s", args, err, out)
	}
	return out
}

func TestViewLifecycle(t *testing.T) {
	st := cmdtest.NewState(t)
	ctx := context.Background()

	for _, p := range []store.NewPrompt{
		{Title: "Go review", Content: "review go code"},
		{Title: "Rust review", Content: "review rust code"},
		{Title: "Go tests", Content: "write go tests"},
	} {
		if _, err := st.Store.CreatePrompt(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	tag, _ := st.Store.EnsureTag(ctx, "go", "")
	_ = st.Store.AddTag(ctx, 1, tag)
	_ = st.Store.AddTag(ctx, 3, tag)

	if out := run(t, st, "add", "--name", "golang", "--tag", "go"); !strings.Contains(out, `Added view "golang"`) {
		t.Fatalf("unexpected add output %q", out)
	}
	run(t, st, "add", "--name", "reviews", "--query", "review")

	out := run(t, st, "ls")
	for _, want := range []string{"all              (built-in)", "golang", "reviews          review"} {
		if !strings.Contains(out, want) {
			t.Fatalf("ls missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "golang") > strings.Index(out, "reviews") {
		t.Fatalf("expected views in insertion order:\n%s", out)
	}

	out = run(t, st, "run", "golang")
	if !strings.Contains(out, "Go review") || !strings.Contains(out, "Go tests") || strings.Contains(out, "Rust") {
		t.Fatalf("unexpected golang view:\n%s", out)
	}

	out = run(t, st, "run", "reviews", "rust")
	if !strings.Contains(out, "Rust review") || strings.Contains(out, "Go review") {
		t.Fatalf("expected query to narrow the view:\n%s", out)
	}

	reloaded, err := config.Load(st.Home)
	if err != nil {
		t.Fatal(err)
	}
	ws, _ := reloaded.ActiveWorkspace()
	if _, ok := ws.Views["golang"]; !ok {
		t.Fatalf("expected view saved to config, got %+v", ws.Views)
	}

	run(t, st, "rm", "--name", "golang")
	if out := run(t, st, "ls"); strings.Contains(out, "golang") {
		t.Fatalf("expected view removed:\n%s", out)
	}
	if _, err := cmdtest.Execute(NewCmdViews(st), "run", "golang"); err == nil {
		t.Fatal("expected removed view to be unknown")
	}
}

func TestViewAddRequiresName(t *testing.T) {
	st := cmdtest.NewState(t)
	if _, err := cmdtest.Execute(NewCmdViews(st), "add", "--query", "x"); err == nil {
		t.Fatal("expected error without --name")
	}
	if _, err := cmdtest.Execute(NewCmdViews(st), "rm", "--name", "missing"); err == nil {
		t.Fatal("expected error removing unknown view")
	}
}

func TestViewAddWarnsOnUnknownTag(t *testing.T) {
	st := cmdtest.NewState(t)
	out := run(t, st, "add", "--name", "later", "--tag", "future")
	if !strings.Contains(out, "warning:") {
		t.Fatalf("expected warning for unknown tag, got %q", out)
	}
}

func TestViewOrder(t *testing.T) {
	st := cmdtest.NewState(t)
	run(t, st, "add", "--name", "golang", "--query", "go")
	run(t, st, "add", "--name", "reviews", "--query", "review")

	out := run(t, st, "order", "reviews", "golang")
	if !strings.Contains(out, "reviews, golang") {
		t.Fatalf("unexpected order output %q", out)
	}
	out = run(t, st, "ls")
	if strings.Index(out, "reviews") > strings.Index(out, "golang") {
		t.Fatalf("expected reviews listed first:\n%s", out)
	}

	if _, err := cmdtest.Execute(NewCmdViews(st), "order", "nope"); err == nil {
		t.Fatal("expected unknown view error")
	}
}
