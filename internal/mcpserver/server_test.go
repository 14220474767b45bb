package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/templater"
)

type fakeLibrary struct {
	prompts map[int64]store.Prompt
	tags    map[int64][]store.Tag
	err     error
}

func (f fakeLibrary) Prompt(_ context.Context, id int64) (store.Prompt, error) {
	if f.err != nil {
		return store.Prompt{}, f.err
	}
	p, ok := f.prompts[id]
	if !ok {
		return store.Prompt{}, store.ErrNotFound
	}
	return p, nil
}

func (f fakeLibrary) PromptTags(_ context.Context, id int64) ([]store.Tag, error) {
	return f.tags[id], nil
}

func (f fakeLibrary) FolderByName(_ context.Context, name string) (store.Folder, error) {
	if name == "Code" {
		return store.Folder{ID: 3, Name: name}, nil
	}
	return store.Folder{}, store.ErrNotFound
}

func (f fakeLibrary) TagByName(_ context.Context, name string) (store.Tag, error) {
	if name == "go" {
		return store.Tag{ID: 5, Name: name}, nil
	}
	return store.Tag{}, store.ErrNotFound
}

type fakeSearcher struct {
	query   string
	filter  store.Filter
	results []search.Result
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, q string, filter store.Filter) ([]search.Result, error) {
	f.query, f.filter = q, filter
	return f.results, f.err
}

type fakeStarters []templater.Template

func (f fakeStarters) Starters() []templater.Template { return f }

func newTestServer(s *fakeSearcher) *PromptServer {
	lib := fakeLibrary{
		prompts: map[int64]store.Prompt{
			1: {ID: 1, Title: "Greeting", Content: "Hello {name}, welcome to {place}"},
		},
		tags: map[int64][]store.Tag{1: {{ID: 5, Name: "go"}}},
	}
	return New(lib, s, fakeStarters{{Name: "email", Title: "Email"}}, nil)
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("expected content in result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func TestSearchPrompts(t *testing.T) {
	s := &fakeSearcher{results: []search.Result{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"}}}
	srv := newTestServer(s)

	fav := true
	res, err := srv.SearchPrompts(context.Background(), mcp.CallToolRequest{}, SearchPromptsRequest{
		Query:    "title:a",
		Folder:   "Code",
		Tags:     []string{"go"},
		Favorite: &fav,
		Limit:    2,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", text(t, res))
	}

	var got []search.Result
	if err := json.Unmarshal([]byte(text(t, res)), &got); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit to apply, got %d results", len(got))
	}
	if s.query != "title:a" || *s.filter.FolderID != 3 || s.filter.TagIDs[0] != 5 || !*s.filter.IsFavorite {
		t.Fatalf("unexpected search call %q %+v", s.query, s.filter)
	}
}

func TestSearchPromptsErrors(t *testing.T) {
	ctx := context.Background()
	srv := newTestServer(&fakeSearcher{})

	res, _ := srv.SearchPrompts(ctx, mcp.CallToolRequest{}, SearchPromptsRequest{Query: "x", Folder: "Nope"})
	if !res.IsError || !strings.Contains(text(t, res), `Unknown folder "Nope"`) {
		t.Fatalf("expected unknown folder error, got %+v", res)
	}

	res, _ = srv.SearchPrompts(ctx, mcp.CallToolRequest{}, SearchPromptsRequest{Query: "x", Tags: []string{"rust"}})
	if !res.IsError || !strings.Contains(text(t, res), `Unknown tag "rust"`) {
		t.Fatalf("expected unknown tag error, got %+v", res)
	}

	failing := newTestServer(&fakeSearcher{err: errors.New("db down")})
	res, _ = failing.SearchPrompts(ctx, mcp.CallToolRequest{}, SearchPromptsRequest{Query: "x"})
	if !res.IsError || !strings.Contains(text(t, res), "db down") {
		t.Fatalf("expected search error, got %+v", res)
	}
}

func TestGetPrompt(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	ctx := context.Background()

	res, err := srv.GetPrompt(ctx, mcp.CallToolRequest{}, GetPromptRequest{ID: 1})
	if err != nil || res.IsError {
		t.Fatalf("GetPrompt: %v %+v", err, res)
	}
	var p store.Prompt
	if err := json.Unmarshal([]byte(text(t, res)), &p); err != nil {
		t.Fatal(err)
	}
	if p.Title != "Greeting" || len(p.Tags) != 1 || p.Tags[0].Name != "go" {
		t.Fatalf("unexpected prompt %+v", p)
	}

	res, _ = srv.GetPrompt(ctx, mcp.CallToolRequest{}, GetPromptRequest{ID: 9})
	if !res.IsError || !strings.Contains(text(t, res), "prompt 9 not found") {
		t.Fatalf("expected not found, got %+v", res)
	}

	res, _ = srv.GetPrompt(ctx, mcp.CallToolRequest{}, GetPromptRequest{})
	if !res.IsError {
		t.Fatal("expected error for missing id")
	}
}

func TestRenderTemplate(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	ctx := context.Background()

	res, err := srv.RenderTemplate(ctx, mcp.CallToolRequest{}, RenderTemplateRequest{
		ID:        1,
		Variables: map[string]string{"name": "Ada", "place": "London"},
	})
	if err != nil || res.IsError {
		t.Fatalf("RenderTemplate: %v %+v", err, res)
	}
	if got := text(t, res); got != "Hello Ada, welcome to London" {
		t.Fatalf("unexpected render %q", got)
	}

	res, err = srv.RenderTemplate(ctx, mcp.CallToolRequest{}, RenderTemplateRequest{
		ID:        1,
		Variables: map[string]string{"name": "Ada"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(text(t, res), "place") {
		t.Fatalf("expected validation error naming place, got %+v", res)
	}
}

func TestListTemplates(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	res, err := srv.ListTemplates(context.Background(), mcp.CallToolRequest{}, ListTemplatesRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text(t, res), `"title": "Email"`) {
		t.Fatalf("unexpected templates %q", text(t, res))
	}

	empty := New(fakeLibrary{}, &fakeSearcher{}, nil, nil)
	res, _ = empty.ListTemplates(context.Background(), mcp.CallToolRequest{}, ListTemplatesRequest{})
	if text(t, res) != "[]" {
		t.Fatalf("expected empty list, got %q", text(t, res))
	}
}

func TestToolsListed(t *testing.T) {
	srv := newTestServer(&fakeSearcher{})
	resp := srv.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"search_prompts", "get_prompt", "render_template", "list_templates"} {
		if !strings.Contains(string(data), `"`+name+`"`) {
			t.Fatalf("expected tool %q in %s", name, data)
		}
	}
}
