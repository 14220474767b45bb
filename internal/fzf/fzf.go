package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/promptorg/internal/render"
	"github.com/Paintersrp/promptorg/internal/search"
)

// ErrNoSelection is returned when the user leaves the finder without picking.
var ErrNoSelection = errors.New("no prompt selected")

// FuzzyFinder picks one prompt out of a set of search results.
type FuzzyFinder struct {
	Header  string
	Width   int
	results []search.Result
	labels  []string

	// find is fuzzyfinder.Find, swapped in tests.
	find func(items []search.Result, label func(int) string, opts ...fuzzyfinder.Option) (int, error)
}

func NewFuzzyFinder(results []search.Result, header string) *FuzzyFinder {
	f := &FuzzyFinder{Header: header, results: results}
	f.find = func(items []search.Result, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
		return fuzzyfinder.Find(items, label, opts...)
	}
	return f
}

// Run opens the finder, optionally seeded with query, and returns the chosen
// result.
func (f *FuzzyFinder) Run(query string) (search.Result, error) {
	if len(f.results) == 0 {
		return search.Result{}, fmt.Errorf("no prompts to pick from")
	}

	f.labels = make([]string, len(f.results))
	for i, r := range f.results {
		f.labels[i] = Label(r)
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.results, func(i int) string { return f.labels[i] }, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return search.Result{}, ErrNoSelection
		}
		return search.Result{}, fmt.Errorf("error selecting prompt: %w", err)
	}
	if idx < 0 || idx >= len(f.results) {
		return search.Result{}, ErrNoSelection
	}
	return f.results[idx], nil
}

// Label is the single line shown for a result in the finder.
func Label(r search.Result) string {
	if r.Tags == "" {
		return fmt.Sprintf("%s [No tags] ", r.Title)
	}
	return fmt.Sprintf("%s [Tags: %s] ", r.Title, r.Tags)
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i < 0 || i >= len(f.results) {
		return ""
	}
	width := f.Width
	if width <= 0 {
		width = w
	}
	return render.Preview(render.FromResult(f.results[i]), width)
}

// Copy puts content on the system clipboard.
func Copy(content string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not available on this system")
	}
	if err := clipboard.WriteAll(strings.TrimRight(content, "\n")); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
