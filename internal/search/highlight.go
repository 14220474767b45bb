package search

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxHighlights      = 5
	maxRegexHighlights = 3
	highlightContext   = 20
	ellipsis           = "..."
)

// Highlights returns up to five snippets showing where the non-negated terms
// of q hit rec. Regex terms contribute their first three matches (the first
// capture group when the pattern has one), literal terms the text around their
// first occurrence.
func (e *Engine) Highlights(rec Record, q Query) []string {
	out := make([]string, 0, maxHighlights)
	for _, t := range q.Terms {
		if len(out) >= maxHighlights {
			break
		}
		if t.IsNegated {
			continue
		}

		text := rec.Text(t.Field)
		if text == "" {
			continue
		}

		if t.IsRegex {
			if re := e.compile(t.Value, q.CaseSensitive); re != nil {
				out = append(out, regexHits(re, text)...)
				continue
			}
		}

		caseSensitive := q.CaseSensitive && !t.IsRegex
		if snippet, ok := literalSnippet(text, t.Value, caseSensitive); ok {
			out = append(out, snippet)
		}
	}

	if len(out) > maxHighlights {
		out = out[:maxHighlights]
	}
	return out
}

func regexHits(re *regexp.Regexp, text string) []string {
	group := 0
	if re.NumSubexp() > 0 {
		group = 1
	}
	var hits []string
	for _, m := range re.FindAllStringSubmatch(text, maxRegexHighlights) {
		if m[group] != "" {
			hits = append(hits, m[group])
		}
	}
	return hits
}

func literalSnippet(text, value string, caseSensitive bool) (string, bool) {
	haystack, needle := text, value
	if !caseSensitive {
		haystack, needle = fold(text), fold(value)
	}

	idx := strings.Index(haystack, needle)
	if idx == -1 {
		return "", false
	}
	start := utf8.RuneCountInString(haystack[:idx])
	return snippet(text, start, utf8.RuneCountInString(needle)), true
}

// snippet cuts the text around runes [index, index+length) with
// highlightContext runes on either side.
func snippet(text string, index, length int) string {
	runes := []rune(text)

	from := max(0, index-highlightContext)
	to := min(len(runes), index+length+highlightContext)

	s := string(runes[from:to])
	if from > 0 {
		s = ellipsis + s
	}
	if to < len(runes) {
		s += ellipsis
	}
	return s
}
