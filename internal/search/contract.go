package search

import (
	"context"
	"strings"

	"github.com/Paintersrp/promptorg/internal/store"
)

// RecordSource supplies the records a search runs over. Prompts must apply
// the filter itself; the engine forwards it unchanged.
type RecordSource interface {
	Prompts(ctx context.Context, f store.Filter) ([]store.Prompt, error)
	PromptTags(ctx context.Context, promptID int64) ([]store.Tag, error)
	Folders(ctx context.Context) ([]store.Folder, error)
}

// Record is a prompt with the associated data the matcher needs.
type Record struct {
	Prompt store.Prompt
	Tags   []string
	Folder string
}

// Text returns the projection of r searched by field f.
func (r Record) Text(f Field) string {
	switch f {
	case FieldTitle:
		return r.Prompt.Title
	case FieldContent:
		return r.Prompt.Content
	case FieldTags:
		return strings.Join(r.Tags, " ")
	case FieldFolder:
		return r.Folder
	case FieldCreated:
		return r.Prompt.CreatedAt
	case FieldUpdated:
		return r.Prompt.UpdatedAt
	case FieldAll:
		return r.Prompt.Title + " " + r.Prompt.Content + " " + strings.Join(r.Tags, " ")
	}
	return ""
}
