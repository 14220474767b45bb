package tag

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func run(t *testing.T, st *state.State, args ...string) string {
	t.Helper()
	out, err := cmdtest.Execute(NewCmdTag(st), args...)
	if err != nil {
		t.Fatalf("tag %v: %v\n%s", args, err, out)
	}
	return out
}

func TestTagLifecycle(t *testing.T) {
	st := cmdtest.NewState(t)
	ctx := context.Background()

	id, err := st.Store.CreatePrompt(ctx, store.NewPrompt{Title: "p", Content: "c"})
	if err != nil {
		t.Fatal(err)
	}

	run(t, st, "add", "review", "--color", "#ff0000")
	if _, err := cmdtest.Execute(NewCmdTag(st), "add", "review"); !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	if out := run(t, st, "attach", "go", "1"); !strings.Contains(out, `Tagged 1 prompt(s) with "go"`) {
		t.Fatalf("unexpected attach output %q", out)
	}
	run(t, st, "attach", "review", "1")

	tags, _ := st.Store.PromptTags(ctx, id)
	if got := store.JoinTagNames(tags, ","); got != "go,review" {
		t.Fatalf("unexpected tags %q", got)
	}

	out := run(t, st, "ls")
	if !strings.Contains(out, "review") || !strings.Contains(out, "#ff0000") {
		t.Fatalf("unexpected tag list %q", out)
	}

	run(t, st, "detach", "go", "1")
	tags, _ = st.Store.PromptTags(ctx, id)
	if got := store.JoinTagNames(tags, ","); got != "review" {
		t.Fatalf("unexpected tags after detach %q", got)
	}

	run(t, st, "rm", "review", "--yes")
	if _, err := st.Store.TagByName(ctx, "review"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected tag deleted, got %v", err)
	}
}

func TestTagErrors(t *testing.T) {
	st := cmdtest.NewState(t)

	if _, err := cmdtest.Execute(NewCmdTag(st), "detach", "missing", "1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected missing tag error, got %v", err)
	}
	if _, err := cmdtest.Execute(NewCmdTag(st), "attach", "go", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
	if out := run(t, st, "ls"); !strings.Contains(out, "No tags") {
		t.Fatalf("unexpected empty list %q", out)
	}
}
