package templater

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/araddon/dateparse"
)

// Variable types understood by Validate and Render.
const (
	TypeText    = "text"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeChoice  = "choice"
	TypeDate    = "date"
)

var (
	placeholderRe  = regexp.MustCompile(`\{([^}]+)\}`)
	emptyVarRe     = regexp.MustCompile(`\{\s*\}`)
	nestedRe       = regexp.MustCompile(`\{[^}]*\{[^}]*\}[^}]*\}`)
	variableNameRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Variable describes one {name} placeholder of a template.
type Variable struct {
	Name        string   `yaml:"name"                  json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Default     string   `yaml:"default,omitempty"     json:"default,omitempty"`
	Type        string   `yaml:"type,omitempty"        json:"type,omitempty"`
	Choices     []string `yaml:"choices,omitempty"     json:"choices,omitempty"`
	Required    bool     `yaml:"required"              json:"required"`
	// Pattern must match at the start of the value.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Check returns a problem description for value, or "" when it is valid.
// Empty optional values are always valid.
func (v Variable) Check(value string) string {
	if strings.TrimSpace(value) == "" {
		if v.Required {
			return fmt.Sprintf("'%s' is required", v.Name)
		}
		return ""
	}

	switch v.Type {
	case TypeNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
			return fmt.Sprintf("'%s' must be a number", v.Name)
		}
	case TypeBoolean:
		if _, ok := parseBool(value); !ok {
			return fmt.Sprintf("'%s' must be true/false", v.Name)
		}
	case TypeChoice:
		if len(v.Choices) > 0 && !contains(v.Choices, value) {
			return fmt.Sprintf("'%s' must be one of: %s", v.Name, strings.Join(v.Choices, ", "))
		}
	case TypeDate:
		if _, err := dateparse.ParseAny(value); err != nil {
			return fmt.Sprintf("'%s' must be a date", v.Name)
		}
	}

	if v.Pattern != "" {
		re, err := regexp.Compile(`^(?:` + v.Pattern + `)`)
		if err != nil {
			return fmt.Sprintf("'%s' has an invalid pattern: %v", v.Name, err)
		}
		if !re.MatchString(value) {
			return fmt.Sprintf("'%s' format is invalid", v.Name)
		}
	}
	return ""
}

// Format normalises value for substitution. Booleans become true/false and
// whole numbers lose their decimal point.
func (v Variable) Format(value string) string {
	switch v.Type {
	case TypeBoolean:
		if b, ok := parseBool(value); ok && b {
			return "true"
		}
		return "false"
	case TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return value
		}
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return value
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true, true
	case "false", "no", "0":
		return false, true
	}
	return false, false
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// ExtractVariables returns the distinct placeholder names in content in the
// order they first appear.
func ExtractVariables(content string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, m := range placeholderRe.FindAllStringSubmatch(content, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// ValidateSyntax lists the problems with the placeholders in content.
func ValidateSyntax(content string) []string {
	var problems []string

	open, closing := strings.Count(content, "{"), strings.Count(content, "}")
	if open != closing {
		problems = append(problems, fmt.Sprintf("Unmatched braces: %d opening, %d closing", open, closing))
	}

	if empty := emptyVarRe.FindAllString(content, -1); len(empty) > 0 {
		problems = append(problems, fmt.Sprintf("Found %d empty variable placeholder(s)", len(empty)))
	}

	if nestedRe.MatchString(content) {
		problems = append(problems, "Nested braces are not allowed in variable names")
	}

	for _, name := range ExtractVariables(content) {
		if !variableNameRe.MatchString(strings.TrimSpace(name)) {
			problems = append(problems,
				fmt.Sprintf("Invalid variable name: '%s' (use letters, numbers, underscore only)", name))
		}
	}
	return problems
}

var typeHints = []struct {
	typ   string
	words []string
}{
	{TypeNumber, []string{"count", "number", "amount", "quantity", "size", "length"}},
	{TypeBoolean, []string{"enable", "disable", "is_", "has_", "should_", "can_"}},
	{TypeDate, []string{"date", "time", "when", "deadline"}},
	{TypeChoice, []string{"type", "kind", "category", "format", "style"}},
}

// SuggestType guesses a variable type from its name.
func SuggestType(name string) string {
	lower := strings.ToLower(name)
	for _, hint := range typeHints {
		for _, w := range hint.words {
			if strings.Contains(lower, w) {
				return hint.typ
			}
		}
	}
	return TypeText
}

// SuggestChoices offers common choices for choice variables.
func SuggestChoices(name string) []string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "format"):
		return []string{"JSON", "XML", "CSV", "Plain Text"}
	case strings.Contains(lower, "style"):
		return []string{"Formal", "Casual", "Technical", "Creative"}
	case strings.Contains(lower, "language"):
		return []string{"English", "Spanish", "French", "German", "Chinese"}
	}
	return nil
}

// Describe turns a variable name like targetAudience or target_audience into
// "Enter the target audience".
func Describe(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '_':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return "Enter the " + strings.Join(strings.Fields(b.String()), " ")
}
