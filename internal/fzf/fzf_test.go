package fzf

import (
	"errors"
	"strings"
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/promptorg/internal/search"
)

func stubFinder(f *FuzzyFinder, idx int, err error, labels *[]string) {
	f.find = func(items []search.Result, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
		for i := range items {
			*labels = append(*labels, label(i))
		}
		return idx, err
	}
}

func TestRunReturnsSelection(t *testing.T) {
	results := []search.Result{
		{ID: 1, Title: "Email", Tags: "work, writing"},
		{ID: 2, Title: "Plan"},
	}
	f := NewFuzzyFinder(results, "Pick a prompt")

	var labels []string
	stubFinder(f, 1, nil, &labels)

	got, err := f.Run("pl")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.ID != 2 {
		t.Fatalf("expected prompt 2, got %d", got.ID)
	}
	if labels[0] != "Email [Tags: work, writing] " || labels[1] != "Plan [No tags] " {
		t.Fatalf("unexpected labels %q", labels)
	}
}

func TestRunAbort(t *testing.T) {
	f := NewFuzzyFinder([]search.Result{{ID: 1, Title: "x"}}, "")
	var labels []string
	stubFinder(f, -1, fuzzyfinder.ErrAbort, &labels)

	if _, err := f.Run(""); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestRunFinderError(t *testing.T) {
	f := NewFuzzyFinder([]search.Result{{ID: 1, Title: "x"}}, "")
	var labels []string
	stubFinder(f, -1, errors.New("tty"), &labels)

	_, err := f.Run("")
	if err == nil || !strings.Contains(err.Error(), "error selecting prompt") {
		t.Fatalf("expected wrapped finder error, got %v", err)
	}
}

func TestRunEmpty(t *testing.T) {
	if _, err := NewFuzzyFinder(nil, "").Run(""); err == nil {
		t.Fatal("expected error with no results")
	}
}

func TestRenderPreview(t *testing.T) {
	f := NewFuzzyFinder([]search.Result{{Title: "Hello", Content: "body text"}}, "")
	f.Width = 60
	if got := f.renderPreview(-1, 80, 20); got != "" {
		t.Fatalf("expected empty preview for no selection, got %q", got)
	}
	if got := f.renderPreview(0, 80, 20); !strings.Contains(got, "body") {
		t.Fatalf("expected content in preview, got %q", got)
	}
}
