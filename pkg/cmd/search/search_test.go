package search

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/views"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func seed(t *testing.T, st *state.State) {
	t.Helper()
	ctx := context.Background()
	work, err := st.Store.CreateFolder(ctx, "Work", 0)
	if err != nil {
		t.Fatal(err)
	}
	prompts := []store.NewPrompt{
		{Title: "Email draft", Content: "Write an email to {recipient}", FolderID: work, IsFavorite: true},
		{Title: "Code review", Content: "Review this Go code for bugs"},
		{Title: "Summary", Content: "Summarize the meeting notes", IsTemplate: true},
	}
	for _, p := range prompts {
		if _, err := st.Store.CreatePrompt(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	tag, err := st.Store.EnsureTag(ctx, "go", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Store.AddTag(ctx, 2, tag); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, st *state.State, args ...string) string {
	t.Helper()
	out, err := cmdtest.Execute(NewCmdSearch(st), args...)
	if err != nil {
		t.Fatalf("search %v: %v\n%s", args, err, out)
	}
	return out
}

func TestSearchPrintsResults(t *testing.T) {
	st := cmdtest.NewState(t)
	seed(t, st)

	out := run(t, st, "title:email")
	if !strings.Contains(out, "#1") || !strings.Contains(out, "Email draft") || !strings.Contains(out, "· Work") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "1 result\n") {
		t.Fatalf("expected result count, got:\n%s", out)
	}

	out = run(t, st, "tags:go", "OR", "title:summary")
	if !strings.Contains(out, "Code review") || !strings.Contains(out, "Summary") || !strings.Contains(out, "2 results") {
		t.Fatalf("unexpected OR output:\n%s", out)
	}

	if out := run(t, st, "nothing-matches-this"); !strings.Contains(out, "No prompts match") {
		t.Fatalf("unexpected empty output %q", out)
	}
}

func TestSearchFiltersAndJSON(t *testing.T) {
	st := cmdtest.NewState(t)
	seed(t, st)

	out := run(t, st, "--folder", "Work", "--json")
	var results []search.Result
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(results) != 1 || results[0].Title != "Email draft" {
		t.Fatalf("unexpected folder results %+v", results)
	}

	out = run(t, st, "--template", "--json")
	results = nil
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Summary" {
		t.Fatalf("unexpected template results %+v", results)
	}

	out = run(t, st, "--limit", "2", "--json")
	results = nil
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(results))
	}

	if _, err := cmdtest.Execute(NewCmdSearch(st), "--tag", "missing"); err == nil {
		t.Fatal("expected unknown tag error")
	}
}

func TestSearchWithinView(t *testing.T) {
	st := cmdtest.NewState(t)
	seed(t, st)

	out := run(t, st, "--view", "favorites")
	if !strings.Contains(out, "Email draft") || strings.Contains(out, "Code review") {
		t.Fatalf("unexpected favorites view output:\n%s", out)
	}

	if _, err := cmdtest.Execute(NewCmdSearch(st), "--view", "missing"); err == nil {
		t.Fatal("expected unknown view error")
	}
}

func TestViewQueryIsNotWidenedByOr(t *testing.T) {
	st := cmdtest.NewState(t)
	seed(t, st)
	ctx := context.Background()

	id, err := st.Store.CreatePrompt(ctx, store.NewPrompt{Title: "bar notes", Content: "drinks list"})
	if err != nil {
		t.Fatal(err)
	}
	personal, err := st.Store.EnsureTag(ctx, "personal", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := st.Store.AddTag(ctx, id, personal); err != nil {
		t.Fatal(err)
	}

	if err := st.Config.AddView("gowork", config.ViewDefinition{Query: "tags:go"}); err != nil {
		t.Fatal(err)
	}
	st.ViewManager = views.NewViewManager(st.Store, st.Workspace)

	out := run(t, st, "--view", "gowork", "review OR bar")
	if !strings.Contains(out, "Code review") || strings.Contains(out, "bar notes") || strings.Contains(out, "Summary") {
		t.Fatalf("OR escaped the view query:\n%s", out)
	}

	out = run(t, st, "--view", "gowork", "OR bar")
	if !strings.Contains(out, "No prompts match") {
		t.Fatalf("leading operator escaped the view query:\n%s", out)
	}
}
