package exchange

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/store"
)

func sampleSnapshot() store.Snapshot {
	return store.Snapshot{
		ExportedAt: "2024-06-01 12:00:00",
		Folders:    []store.Folder{{ID: 1, Name: "Writing"}},
		Tags:       []store.Tag{{ID: 1, Name: "blog", Color: "#ff0000"}},
		Prompts: []store.Prompt{
			{ID: 1, Title: "Outline", Content: "Outline a post", FolderID: 1, IsFavorite: true,
				CreatedAt: "2024-01-01 00:00:00", UpdatedAt: "2024-01-02 00:00:00",
				Tags: []store.Tag{{ID: 1, Name: "blog"}}},
			{ID: 2, Title: "Answer", Content: "Answer briefly", IsTemplate: true,
				CreatedAt: "2024-02-01 00:00:00", UpdatedAt: "2024-02-02 00:00:00"},
		},
		PromptTags: []store.PromptTagLink{{PromptID: 1, TagID: 1}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"json": FormatJSON, "YML": FormatYAML, ".md": FormatMarkdown, "text": FormatText,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected error for pdf")
	}

	f, err := FormatFromPath("/tmp/library.yaml")
	if err != nil || f != FormatYAML {
		t.Errorf("FormatFromPath() = %q, %v", f, err)
	}
	if _, err := FormatFromPath("library"); err == nil {
		t.Error("expected error for path without extension")
	}
}

func TestJSONAndYAMLRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Export(&buf, sampleSnapshot(), format, Options{}); err != nil {
				t.Fatalf("Export() error = %v", err)
			}

			snap, err := Decode(&buf, format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(snap.Prompts) != 2 || snap.Prompts[0].Title != "Outline" || !snap.Prompts[0].IsFavorite {
				t.Fatalf("unexpected prompts %+v", snap.Prompts)
			}
			if snap.Prompts[0].CreatedAt != "2024-01-01 00:00:00" {
				t.Errorf("CreatedAt = %q", snap.Prompts[0].CreatedAt)
			}
			if len(snap.PromptTags) != 1 || snap.Folders[0].Name != "Writing" {
				t.Errorf("unexpected snapshot %+v", snap)
			}
		})
	}
}

func TestDecodeNormalizesTimestamps(t *testing.T) {
	in := `{"prompts":[{"title":"a","content":"b","created_at":"2024-03-05T10:20:30Z","updated_at":"not a date"}]}`
	snap, err := Decode(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	p := snap.Prompts[0]
	if p.CreatedAt != "2024-03-05 10:20:30" {
		t.Errorf("CreatedAt = %q", p.CreatedAt)
	}
	if p.UpdatedAt != "" {
		t.Errorf("UpdatedAt = %q, want empty", p.UpdatedAt)
	}

	if _, err := Decode(strings.NewReader("x"), FormatMarkdown); err == nil {
		t.Error("expected error decoding markdown")
	}
}

func TestExportMarkdown(t *testing.T) {
	var buf bytes.Buffer
	err := Export(&buf, sampleSnapshot(), FormatMarkdown, Options{SortBy: "title", GroupByFolder: true})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Prompt Collection",
		"**Total prompts:** 2",
		"## Folder: Unfiled",
		"## Folder: Writing",
		"### Outline\n*Favorite*",
		"### Answer\n*Template*",
		"**Tags:** `blog`",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Folder: Unfiled") > strings.Index(out, "Folder: Writing") {
		t.Error("sorted by title, Answer (unfiled) should come first")
	}
}

func TestExportText(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, sampleSnapshot(), FormatText, Options{Title: "Mine"}); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"====\nMine\n====", "Outline\n-------\n[FAVORITE]", "Tags: blog"} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "FOLDER:") {
		t.Error("folders should not be shown without grouping")
	}
}

func TestParseMarkdownPrompt(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		title   string
		content string
		tags    []string
	}{
		{
			name:    "heading",
			file:    "review.md",
			data:    "# Code Review\n\nReview this diff:\n\n{diff}\n",
			title:   "Code Review",
			content: "Review this diff:\n\n{diff}",
		},
		{
			name:    "no heading",
			file:    "notes/summarize.md",
			data:    "Summarize the text below.",
			title:   "summarize",
			content: "Summarize the text below.",
		},
		{
			name:    "front matter",
			file:    "x.md",
			data:    "---\ntitle: Translate\ntags: [language, daily]\n---\n# Ignored heading\nTranslate to French.\n",
			title:   "Translate",
			content: "# Ignored heading\nTranslate to French.",
			tags:    []string{"language", "daily"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mp, err := ParseMarkdownPrompt(tt.file, []byte(tt.data))
			if err != nil {
				t.Fatalf("ParseMarkdownPrompt() error = %v", err)
			}
			if mp.Title != tt.title || mp.Content != tt.content {
				t.Fatalf("got title %q content %q", mp.Title, mp.Content)
			}
			if strings.Join(mp.Tags, ",") != strings.Join(tt.tags, ",") {
				t.Errorf("tags = %v, want %v", mp.Tags, tt.tags)
			}
		})
	}

	if _, err := ParseMarkdownPrompt("empty.md", []byte("# Only a title\n")); err == nil {
		t.Error("expected error for a prompt without content")
	}
}
