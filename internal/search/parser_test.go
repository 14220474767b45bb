package search

import (
	"reflect"
	"testing"
)

func op(o Operator) *Operator { return &o }

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Term
	}{
		{
			name:  "plain word",
			input: "python",
			want:  []Term{{Field: FieldAll, Value: "python"}},
		},
		{
			name:  "field prefix",
			input: "title:Python",
			want:  []Term{{Field: FieldTitle, Value: "Python"}},
		},
		{
			name:  "field prefix is case insensitive",
			input: "TITLE:Python",
			want:  []Term{{Field: FieldTitle, Value: "Python"}},
		},
		{
			name:  "unknown field stays in the value",
			input: "author:bob",
			want:  []Term{{Field: FieldAll, Value: "author:bob"}},
		},
		{
			name:  "quoted phrase protects operators",
			input: `title:"A AND B"`,
			want:  []Term{{Field: FieldTitle, Value: "A AND B", IsExact: true}},
		},
		{
			name:  "regex literal",
			input: "content:/regex.*pattern/",
			want:  []Term{{Field: FieldContent, Value: "regex.*pattern", IsRegex: true}},
		},
		{
			name:  "regex prefix",
			input: "regex:^foo",
			want:  []Term{{Field: FieldAll, Value: "^foo", IsRegex: true}},
		},
		{
			name:  "regex literal protects operators",
			input: "/cats OR dogs/",
			want:  []Term{{Field: FieldAll, Value: "cats OR dogs", IsRegex: true}},
		},
		{
			name:  "slashes mid string are literal",
			input: "foo/bar/baz",
			want:  []Term{{Field: FieldAll, Value: "foo/bar/baz"}},
		},
		{
			name:  "negation",
			input: "-tags:deprecated",
			want:  []Term{{Field: FieldTags, Value: "deprecated", IsNegated: true}},
		},
		{
			name:  "dash followed by space is literal",
			input: "- foo",
			want:  []Term{{Field: FieldAll, Value: "- foo"}},
		},
		{
			name:  "operators attach to the following term",
			input: "a OR b AND c",
			want: []Term{
				{Field: FieldAll, Value: "a"},
				{Field: FieldAll, Value: "b", Operator: op(OpOr)},
				{Field: FieldAll, Value: "c", Operator: op(OpAnd)},
			},
		},
		{
			name:  "operators are case insensitive",
			input: "tags:ai and content:tutorial",
			want: []Term{
				{Field: FieldTags, Value: "ai"},
				{Field: FieldContent, Value: "tutorial", Operator: op(OpAnd)},
			},
		},
		{
			name:  "operators need word boundaries",
			input: "Android brand",
			want:  []Term{{Field: FieldAll, Value: "Android brand"}},
		},
		{
			name:  "not operator",
			input: "guide NOT draft",
			want: []Term{
				{Field: FieldAll, Value: "guide"},
				{Field: FieldAll, Value: "draft", Operator: op(OpNot)},
			},
		},
		{
			name:  "empty field value is dropped",
			input: "title: AND content:x",
			want:  []Term{{Field: FieldContent, Value: "x", Operator: op(OpAnd)}},
		},
		{
			name:  "empty quotes are dropped",
			input: `""`,
			want:  nil,
		},
		{
			name:  "text after a leading quoted phrase is dropped",
			input: `"a" b`,
			want:  []Term{{Field: FieldAll, Value: "a", IsExact: true}},
		},
		{
			name:  "text after a leading regex literal is dropped",
			input: `/a/b`,
			want:  []Term{{Field: FieldAll, Value: "a", IsRegex: true}},
		},
		{
			name:  "trailing operator is ignored",
			input: "python OR",
			want:  []Term{{Field: FieldAll, Value: "python"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if !reflect.DeepEqual(got.Terms, tt.want) {
				t.Fatalf("Parse(%q).Terms = %+v, want %+v", tt.input, got.Terms, tt.want)
			}
			if got.GlobalOperator != OpAnd {
				t.Errorf("GlobalOperator = %q, want AND", got.GlobalOperator)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		q := Parse(input)
		if !q.Empty() {
			t.Errorf("Parse(%q) returned %d terms, want none", input, len(q.Terms))
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{
		`title:"A AND B" OR -tags:old`,
		`content:/x|y/ NOT folder:archive`,
		`regex:([`,
	}
	for _, input := range inputs {
		if a, b := Parse(input), Parse(input); !reflect.DeepEqual(a, b) {
			t.Errorf("Parse(%q) not deterministic: %+v vs %+v", input, a, b)
		}
	}
}

func TestParserDefaults(t *testing.T) {
	p := Parser{GlobalOperator: OpOr, CaseSensitive: true}
	q := p.Parse("a b")
	if q.GlobalOperator != OpOr || !q.CaseSensitive {
		t.Fatalf("parser defaults not applied: %+v", q)
	}
}

func TestParseField(t *testing.T) {
	if f, ok := ParseField(" Folder "); !ok || f != FieldFolder {
		t.Errorf("ParseField(Folder) = %q, %v", f, ok)
	}
	if _, ok := ParseField("author"); ok {
		t.Error("ParseField(author) should fail")
	}
	if o, ok := ParseOperator("not"); !ok || o != OpNot {
		t.Errorf("ParseOperator(not) = %q, %v", o, ok)
	}
	if _, ok := ParseOperator("XOR"); ok {
		t.Error("ParseOperator(XOR) should fail")
	}
}
