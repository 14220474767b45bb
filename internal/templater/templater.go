// Package templater renders prompts containing {variable} placeholders and
// ships a set of starter templates.
package templater

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates
var embeddedTemplates embed.FS

// ErrTemplateNotFound is returned when no starter template has the given name.
var ErrTemplateNotFound = errors.New("template not found")

// Template is prompt content with described variables.
type Template struct {
	Name        string     `yaml:"-"                     json:"name,omitempty"`
	Title       string     `yaml:"title"                 json:"title"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string     `yaml:"category,omitempty"    json:"category,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"        json:"tags,omitempty"`
	Content     string     `yaml:"content"               json:"content"`
	Variables   []Variable `yaml:"variables,omitempty"   json:"variables,omitempty"`
}

// FromContent builds a template whose variables are detected from content,
// each required and typed from its name.
func FromContent(title, content string) Template {
	t := Template{Title: title, Content: content}
	for _, name := range ExtractVariables(content) {
		v := Variable{
			Name:        name,
			Description: Describe(name),
			Type:        SuggestType(name),
			Required:    true,
		}
		if v.Type == TypeChoice {
			v.Choices = SuggestChoices(name)
		}
		t.Variables = append(t.Variables, v)
	}
	return t
}

// Variable returns the named variable.
func (t Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// FieldError is a problem with the value supplied for one variable.
type FieldError struct {
	Variable string
	Message  string
}

// ValidationError lists every variable whose value was rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Variable+": "+f.Message)
	}
	return "validation errors: " + strings.Join(msgs, "; ")
}

// Validate checks values against the variable definitions. Missing values
// fall back to the variable default.
func (t Template) Validate(values map[string]string) error {
	var verr ValidationError
	for _, v := range t.Variables {
		value, ok := values[v.Name]
		if !ok {
			value = v.Default
		}
		if msg := v.Check(value); msg != "" {
			verr.Fields = append(verr.Fields, FieldError{Variable: v.Name, Message: msg})
		}
	}
	if len(verr.Fields) > 0 {
		return &verr
	}
	return nil
}

// Render validates values and substitutes every defined variable.
func (t Template) Render(values map[string]string) (string, error) {
	if err := t.Validate(values); err != nil {
		return "", err
	}
	return t.substitute(values, false), nil
}

// Preview substitutes what is known and shows [name] for the rest. It never
// fails.
func (t Template) Preview(values map[string]string) string {
	return t.substitute(values, true)
}

func (t Template) substitute(values map[string]string, preview bool) string {
	pairs := make([]string, 0, len(t.Variables)*2)
	for _, v := range t.Variables {
		value, ok := values[v.Name]
		if !ok {
			value = v.Default
		}

		switch {
		case value != "":
			value = v.Format(value)
		case preview:
			value = "[" + v.Name + "]"
		}
		pairs = append(pairs, "{"+v.Name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(t.Content)
}

// Check reports syntax problems and mismatches between the content and the
// variable definitions.
func (t Template) Check() []string {
	issues := ValidateSyntax(t.Content)

	used := ExtractVariables(t.Content)
	usedSet := make(map[string]bool, len(used))
	for _, name := range used {
		usedSet[name] = true
	}
	defined := make(map[string]bool, len(t.Variables))
	for _, v := range t.Variables {
		defined[v.Name] = true
	}

	var undefined, unused []string
	for _, name := range used {
		if !defined[name] {
			undefined = append(undefined, name)
		}
	}
	for _, v := range t.Variables {
		if !usedSet[v.Name] {
			unused = append(unused, v.Name)
		}
	}
	if len(undefined) > 0 {
		issues = append(issues, "Undefined variables: "+strings.Join(undefined, ", "))
	}
	if len(unused) > 0 {
		issues = append(issues, "Unused variable definitions: "+strings.Join(unused, ", "))
	}
	return issues
}

// Templater holds the starter templates. It is safe for concurrent use.
type Templater struct {
	userDir string

	mu        sync.RWMutex
	templates map[string]Template
}

// New loads starter templates. YAML files in userDir take precedence over
// the embedded ones with the same name; a missing userDir is ignored.
func New(userDir string) (*Templater, error) {
	t := &Templater{userDir: userDir}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// UserDir is the directory searched for user templates.
func (t *Templater) UserDir() string {
	return t.userDir
}

// Reload reads the templates again. On error the previous set is kept.
func (t *Templater) Reload() error {
	m := make(map[string]Template)

	if t.userDir != "" {
		if _, err := os.Stat(t.userDir); err == nil {
			if err := loadTemplates(m, os.DirFS(t.userDir), "."); err != nil {
				return fmt.Errorf("load user templates: %w", err)
			}
		}
	}

	if err := loadTemplates(m, embeddedTemplates, "templates"); err != nil {
		return fmt.Errorf("load embedded templates: %w", err)
	}

	t.mu.Lock()
	t.templates = m
	t.mu.Unlock()
	return nil
}

// Names returns the template names in sorted order.
func (t *Templater) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.names()
}

func (t *Templater) names() []string {
	names := make([]string, 0, len(t.templates))
	for name := range t.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (t *Templater) Get(name string) (Template, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	tmpl, ok := t.templates[strings.ToLower(name)]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return tmpl, nil
}

// Starters returns every template sorted by name.
func (t *Templater) Starters() []Template {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Template, 0, len(t.templates))
	for _, name := range t.names() {
		out = append(out, t.templates[name])
	}
	return out
}

func loadTemplates(m map[string]Template, fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := filepath.Ext(d.Name())
		if d.IsDir() || (ext != ".yaml" && ext != ".yml") {
			return nil
		}

		name := strings.ToLower(strings.TrimSuffix(d.Name(), ext))
		if _, exists := m[name]; exists {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		var tmpl Template
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		tmpl.Name = name
		if len(tmpl.Variables) == 0 {
			tmpl.Variables = FromContent(tmpl.Title, tmpl.Content).Variables
		}
		m[name] = tmpl
		return nil
	})
}
