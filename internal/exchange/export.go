package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/promptorg/internal/store"
)

const unfiled = "Unfiled"

// Options shape the human readable formats. JSON and YAML always carry the
// full snapshot.
type Options struct {
	Title string
	// SortBy is "title", "created" or "updated". Empty keeps snapshot order.
	SortBy        string
	Descending    bool
	GroupByFolder bool
}

// Export writes snap to w in the given format.
func Export(w io.Writer, snap store.Snapshot, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, renderDocument(snap, opts, markdownStyle{}))
		return err
	case FormatText:
		_, err := io.WriteString(w, renderDocument(snap, opts, textStyle{}))
		return err
	}
	return fmt.Errorf("unsupported export format %q", format)
}

type style interface {
	header(b *strings.Builder, title string, count int, exportedAt string)
	folder(b *strings.Builder, name string)
	prompt(b *strings.Builder, p store.Prompt)
}

func renderDocument(snap store.Snapshot, opts Options, s style) string {
	title := opts.Title
	if title == "" {
		title = "Prompt Collection"
	}

	prompts := sortPrompts(snap.Prompts, opts)

	var b strings.Builder
	s.header(&b, title, len(prompts), snap.ExportedAt)

	if !opts.GroupByFolder {
		for _, p := range prompts {
			s.prompt(&b, p)
		}
		return b.String()
	}

	names := make(map[int64]string, len(snap.Folders))
	for _, f := range snap.Folders {
		names[f.ID] = f.Name
	}

	var order []string
	groups := make(map[string][]store.Prompt)
	for _, p := range prompts {
		name, ok := names[p.FolderID]
		if !ok {
			name = unfiled
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], p)
	}

	for _, name := range order {
		s.folder(&b, name)
		for _, p := range groups[name] {
			s.prompt(&b, p)
		}
	}
	return b.String()
}

func sortPrompts(prompts []store.Prompt, opts Options) []store.Prompt {
	out := append([]store.Prompt(nil), prompts...)

	var key func(p store.Prompt) string
	switch opts.SortBy {
	case "title":
		key = func(p store.Prompt) string { return strings.ToLower(p.Title) }
	case "created":
		key = func(p store.Prompt) string { return p.CreatedAt }
	case "updated":
		key = func(p store.Prompt) string { return p.UpdatedAt }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if opts.Descending {
			return key(out[i]) > key(out[j])
		}
		return key(out[i]) < key(out[j])
	})
	return out
}

type markdownStyle struct{}

func (markdownStyle) header(b *strings.Builder, title string, count int, exportedAt string) {
	fmt.Fprintf(b, "# %s\n\n", title)
	if exportedAt != "" {
		fmt.Fprintf(b, "**Exported on:** %s  \n", exportedAt)
	}
	fmt.Fprintf(b, "**Total prompts:** %d\n\n", count)
}

func (markdownStyle) folder(b *strings.Builder, name string) {
	fmt.Fprintf(b, "## Folder: %s\n\n", name)
}

func (markdownStyle) prompt(b *strings.Builder, p store.Prompt) {
	fmt.Fprintf(b, "### %s\n", p.Title)
	if badges := badges(p, "Favorite", "Template"); badges != "" {
		fmt.Fprintf(b, "*%s*\n", badges)
	}

	fence := "```"
	for strings.Contains(p.Content, fence) {
		fence += "`"
	}
	fmt.Fprintf(b, "\n%s\n%s\n%s\n\n", fence, p.Content, fence)

	fmt.Fprintf(b, "**Created:** %s  \n**Updated:** %s\n", p.CreatedAt, p.UpdatedAt)
	if len(p.Tags) > 0 {
		quoted := make([]string, 0, len(p.Tags))
		for _, name := range store.TagNames(p.Tags) {
			quoted = append(quoted, "`"+name+"`")
		}
		fmt.Fprintf(b, "**Tags:** %s\n", strings.Join(quoted, ", "))
	}
	b.WriteString("\n")
}

type textStyle struct{}

func (textStyle) header(b *strings.Builder, title string, count int, exportedAt string) {
	rule := strings.Repeat("=", len([]rune(title)))
	fmt.Fprintf(b, "%s\n%s\n%s\n\n", rule, title, rule)
	if exportedAt != "" {
		fmt.Fprintf(b, "Exported on: %s\n", exportedAt)
	}
	fmt.Fprintf(b, "Total prompts: %d\n\n", count)
}

func (textStyle) folder(b *strings.Builder, name string) {
	fmt.Fprintf(b, "FOLDER: %s\n%s\n\n", name, strings.Repeat("-", 8+len([]rune(name))))
}

func (textStyle) prompt(b *strings.Builder, p store.Prompt) {
	fmt.Fprintf(b, "%s\n%s\n", p.Title, strings.Repeat("-", len([]rune(p.Title))))
	if badges := badges(p, "[FAVORITE]", "[TEMPLATE]"); badges != "" {
		b.WriteString(badges + "\n")
	}
	fmt.Fprintf(b, "\n%s\n\n", p.Content)
	fmt.Fprintf(b, "Created: %s\nUpdated: %s\n", p.CreatedAt, p.UpdatedAt)
	if len(p.Tags) > 0 {
		fmt.Fprintf(b, "Tags: %s\n", store.JoinTagNames(p.Tags, ", "))
	}
	b.WriteString("\n")
}

func badges(p store.Prompt, favorite, template string) string {
	var out []string
	if p.IsFavorite {
		out = append(out, favorite)
	}
	if p.IsTemplate {
		out = append(out, template)
	}
	return strings.Join(out, " | ")
}
