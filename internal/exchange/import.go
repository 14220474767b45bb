package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/promptorg/internal/constants"
	"github.com/Paintersrp/promptorg/internal/store"
)

// Decode reads a snapshot written by Export in JSON or YAML. Timestamps in
// any common layout are normalised to UTC; ones that cannot be parsed are cleared
// so the store assigns fresh ones.
func Decode(r io.Reader, format Format) (store.Snapshot, error) {
	var snap store.Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return store.Snapshot{}, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&snap); err != nil && err != io.EOF {
			return store.Snapshot{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return store.Snapshot{}, fmt.Errorf("cannot import %s files", format)
	}

	for i := range snap.Folders {
		snap.Folders[i].CreatedAt = normalizeTime(snap.Folders[i].CreatedAt)
		snap.Folders[i].UpdatedAt = normalizeTime(snap.Folders[i].UpdatedAt)
	}
	for i := range snap.Tags {
		snap.Tags[i].CreatedAt = normalizeTime(snap.Tags[i].CreatedAt)
	}
	for i := range snap.Prompts {
		snap.Prompts[i].CreatedAt = normalizeTime(snap.Prompts[i].CreatedAt)
		snap.Prompts[i].UpdatedAt = normalizeTime(snap.Prompts[i].UpdatedAt)
	}
	return snap, nil
}

func normalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return ""
	}
	return t.UTC().Format(constants.TimeLayout)
}

// MarkdownPrompt is a prompt read from a markdown file.
type MarkdownPrompt struct {
	Title   string
	Content string
	Tags    []string
}

var frontMatterRe = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*(?:\n|\z)`)

// ParseMarkdownPrompt reads a prompt from markdown. An optional YAML front
// matter block may set title and tags. Otherwise the first heading becomes the
// title and the text after it the content; without a heading the file name
// is used.
func ParseMarkdownPrompt(name string, data []byte) (MarkdownPrompt, error) {
	var mp MarkdownPrompt

	if loc := frontMatterRe.FindSubmatchIndex(data); loc != nil {
		var fm struct {
			Title string   `yaml:"title"`
			Tags  []string `yaml:"tags"`
		}
		if err := yaml.Unmarshal(data[loc[2]:loc[3]], &fm); err != nil {
			return MarkdownPrompt{}, fmt.Errorf("parse front matter of %s: %w", name, err)
		}
		mp.Title = strings.TrimSpace(fm.Title)
		mp.Tags = fm.Tags
		data = data[loc[1]:]
	}

	body := data
	if mp.Title == "" {
		if title, rest, ok := splitHeading(data); ok {
			mp.Title = title
			body = rest
		}
	}
	if mp.Title == "" {
		mp.Title = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}

	mp.Content = strings.TrimSpace(string(body))
	if mp.Content == "" {
		return MarkdownPrompt{}, fmt.Errorf("%s has no prompt content", name)
	}
	return mp, nil
}

// splitHeading finds the first heading and returns its text and the source
// after the heading line.
func splitHeading(source []byte) (string, []byte, bool) {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var (
		title string
		end   = -1
	)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines == nil || lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		title = strings.TrimSpace(string(h.Text(source)))
		stop := lines.At(lines.Len() - 1).Stop
		if nl := bytes.IndexByte(source[stop:], '\n'); nl >= 0 {
			end = stop + nl + 1
		} else {
			end = len(source)
		}
		return ast.WalkStop, nil
	})

	if end < 0 || title == "" {
		return "", nil, false
	}
	return title, source[end:], true
}
