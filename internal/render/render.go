// Package render turns prompts into terminal previews.
package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/store"
)

const (
	defaultWidth = 100
	defaultStyle = "dracula"
)

// Document is what a preview shows for one prompt.
type Document struct {
	Title      string
	Content    string
	Folder     string
	Tags       []string
	Favorite   bool
	Template   bool
	UpdatedAt  string
	Highlights []string
}

func FromPrompt(p store.Prompt, folder string) Document {
	return Document{
		Title:     p.Title,
		Content:   p.Content,
		Folder:    folder,
		Tags:      store.TagNames(p.Tags),
		Favorite:  p.IsFavorite,
		Template:  p.IsTemplate,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromResult(r search.Result) Document {
	var tags []string
	for _, t := range strings.Split(r.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return Document{
		Title:      r.Title,
		Content:    r.Content,
		Folder:     r.FolderName,
		Tags:       tags,
		UpdatedAt:  r.UpdatedAt,
		Highlights: r.Highlights,
	}
}

// Markdown lays the document out as markdown. Prompt content is fenced so
// that template braces and markdown inside prompts are shown verbatim.
func (d Document) Markdown() string {
	var b strings.Builder
	title := d.Title
	if d.Favorite {
		title = "★ " + title
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	var meta []string
	if d.Folder != "" {
		meta = append(meta, "**Folder:** "+d.Folder)
	}
	if len(d.Tags) > 0 {
		meta = append(meta, "**Tags:** "+strings.Join(d.Tags, ", "))
	}
	if d.Template {
		meta = append(meta, "**Template**")
	}
	if d.UpdatedAt != "" {
		meta = append(meta, "**Updated:** "+d.UpdatedAt)
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · "))
		b.WriteString("\n\n")
	}

	fence := "```"
	for strings.Contains(d.Content, fence) {
		fence += "`"
	}
	fmt.Fprintf(&b, "%s\n%s\n%s\n", fence, strings.TrimRight(d.Content, "\n"), fence)

	if len(d.Highlights) > 0 {
		b.WriteString("\n## Matches\n\n")
		for _, h := range d.Highlights {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	return b.String()
}

// Renderer renders markdown for a terminal of a fixed width.
type Renderer struct {
	tr *glamour.TermRenderer
}

func NewRenderer(width int, profile termenv.Profile) (*Renderer, error) {
	if width <= 0 {
		width = defaultWidth
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(defaultStyle),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(profile),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	return &Renderer{tr: tr}, nil
}

func (r *Renderer) Render(d Document) (string, error) {
	return r.tr.Render(d.Markdown())
}

// Preview renders d, falling back to the plain markdown when rendering
// fails.
func Preview(d Document, width int) string {
	r, err := NewRenderer(width, termenv.ANSI256)
	if err != nil {
		return d.Markdown()
	}
	out, err := r.Render(d)
	if err != nil {
		return d.Markdown()
	}
	return out
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the width of the terminal on f, or a default when f is not a
// terminal.
func Width(f *os.File) int {
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
