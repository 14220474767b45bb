// Package search implements the prompt query language: a small boolean
// syntax of field-scoped terms, quoted phrases, regex literals and negation,
// plus an engine that evaluates parsed queries against prompt records.
package search

import "strings"

// Field names the projection of a record a term is matched against.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldTags    Field = "tags"
	FieldFolder  Field = "folder"
	FieldCreated Field = "created"
	FieldUpdated Field = "updated"
	FieldAll     Field = "all"
)

// Fields lists every searchable field in display order.
var Fields = []Field{FieldTitle, FieldContent, FieldTags, FieldFolder, FieldCreated, FieldUpdated, FieldAll}

// ParseField resolves a field name case-insensitively.
func ParseField(name string) (Field, bool) {
	f := Field(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Fields {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Operator joins a term to the result of the terms before it.
type Operator string

const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
	OpNot Operator = "NOT"
)

// ParseOperator resolves AND, OR and NOT case-insensitively.
func ParseOperator(s string) (Operator, bool) {
	switch op := Operator(strings.ToUpper(strings.TrimSpace(s))); op {
	case OpAnd, OpOr, OpNot:
		return op, true
	}
	return "", false
}

// Term is one atomic condition of a query.
type Term struct {
	Field Field
	Value string
	// Operator is the operator written before the term, nil when the term
	// follows another term directly or opens the query.
	Operator  *Operator
	IsRegex   bool
	IsExact   bool
	IsNegated bool
}

// Query is an ordered list of terms evaluated strictly left to right.
type Query struct {
	Terms []Term
	// GlobalOperator joins terms that carry no operator of their own.
	GlobalOperator Operator
	CaseSensitive  bool
}

// Empty reports whether the query has no terms and so matches everything.
func (q Query) Empty() bool {
	return len(q.Terms) == 0
}

// Result is a matching prompt prepared for display.
type Result struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       string   `json:"tags"`
	FolderName string   `json:"folder_name"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
	Score      *float64 `json:"score"`
	Highlights []string `json:"highlights"`
}
