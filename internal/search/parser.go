package search

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	quotedRe   = regexp.MustCompile(`"([^"]*)"`)
	regexLitRe = regexp.MustCompile(`/([^/]+)/`)
	operatorRe = regexp.MustCompile(`(?i)\b(AND|OR|NOT)\b`)
	fieldRe    = regexp.MustCompile(`^([\p{L}\p{N}_]+):`)
)

const regexPrefix = "regex:"

// Parser turns query strings into queries. The zero value is ready to use.
type Parser struct {
	// GlobalOperator is copied onto every parsed query. Empty means AND.
	GlobalOperator Operator
	CaseSensitive  bool
}

// Parse parses s with the default parser.
func Parse(s string) Query {
	var p Parser
	return p.Parse(s)
}

// Parse never fails: text it cannot interpret becomes part of a literal
// term.
func (p Parser) Parse(s string) Query {
	q := Query{GlobalOperator: p.GlobalOperator, CaseSensitive: p.CaseSensitive}
	if q.GlobalOperator == "" {
		q.GlobalOperator = OpAnd
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return q
	}

	var pending *Operator
	for _, part := range splitOperators(s) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if op, ok := ParseOperator(part); ok {
			pending = &op
			continue
		}

		term, ok := parseTerm(part)
		if !ok {
			continue
		}
		term.Operator = pending
		q.Terms = append(q.Terms, term)
		pending = nil
	}
	return q
}

// splitOperators splits s around AND, OR and NOT while keeping the operators
// as their own fragments. Quoted phrases and /regex/ literals are shielded
// so operators inside them are not split.
func splitOperators(s string) []string {
	var protected []string
	protect := func(m string) string {
		key := "\x00" + strconv.Itoa(len(protected)) + "\x00"
		protected = append(protected, m)
		return key
	}

	s = quotedRe.ReplaceAllStringFunc(s, protect)
	s = regexLitRe.ReplaceAllStringFunc(s, protect)

	var parts []string
	last := 0
	for _, loc := range operatorRe.FindAllStringIndex(s, -1) {
		parts = append(parts, s[last:loc[0]], s[loc[0]:loc[1]])
		last = loc[1]
	}
	parts = append(parts, s[last:])

	if len(protected) == 0 {
		return parts
	}

	// Later placeholders may sit inside earlier restored text, so restore in
	// reverse order.
	for i, part := range parts {
		for j := len(protected) - 1; j >= 0; j-- {
			key := "\x00" + strconv.Itoa(j) + "\x00"
			part = strings.ReplaceAll(part, key, protected[j])
		}
		parts[i] = part
	}
	return parts
}

func parseTerm(s string) (Term, bool) {
	t := Term{Field: FieldAll}

	s = strings.TrimSpace(s)
	if len(s) > 1 && s[0] == '-' {
		if r, _ := utf8.DecodeRuneInString(s[1:]); !unicode.IsSpace(r) {
			t.IsNegated = true
			s = s[1:]
		}
	}

	if m := fieldRe.FindStringSubmatch(s); m != nil {
		if f, ok := ParseField(m[1]); ok {
			t.Field = f
			s = strings.TrimSpace(s[len(m[0]):])
		}
	}

	if strings.HasPrefix(s, regexPrefix) {
		t.IsRegex = true
		s = strings.TrimSpace(s[len(regexPrefix):])
	} else if loc := regexLitRe.FindStringSubmatchIndex(s); loc != nil && loc[0] == 0 {
		t.IsRegex = true
		s = s[loc[2]:loc[3]]
	}

	if loc := quotedRe.FindStringSubmatchIndex(s); loc != nil && loc[0] == 0 {
		t.IsExact = true
		s = s[loc[2]:loc[3]]
	}

	t.Value = strings.TrimSpace(s)
	if t.Value == "" {
		return Term{}, false
	}
	return t, true
}
