package store

import (
	"strings"
	"time"

	"github.com/Paintersrp/promptorg/internal/constants"
)

// Folder groups prompts. ParentID is zero for top-level folders.
type Folder struct {
	ID        int64  `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	ParentID  int64  `json:"parent_id"  yaml:"parent_id"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

// Tag labels prompts. Names are unique.
type Tag struct {
	ID        int64  `json:"id"         yaml:"id"`
	Name      string `json:"name"       yaml:"name"`
	Color     string `json:"color"      yaml:"color"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// Prompt is a single record in the library. FolderID is zero when the prompt
// is not filed in any folder.
type Prompt struct {
	ID         int64  `json:"id"          yaml:"id"`
	Title      string `json:"title"       yaml:"title"`
	Content    string `json:"content"     yaml:"content"`
	FolderID   int64  `json:"folder_id"   yaml:"folder_id"`
	IsFavorite bool   `json:"is_favorite" yaml:"is_favorite"`
	IsTemplate bool   `json:"is_template" yaml:"is_template"`
	CreatedAt  string `json:"created_at"  yaml:"created_at"`
	UpdatedAt  string `json:"updated_at"  yaml:"updated_at"`
	Tags       []Tag  `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// PromptVersion is a historical copy of a prompt's content.
type PromptVersion struct {
	ID        int64  `json:"id"         yaml:"id"`
	PromptID  int64  `json:"prompt_id"  yaml:"prompt_id"`
	Content   string `json:"content"    yaml:"content"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// NewPrompt carries the fields needed to create a prompt.
type NewPrompt struct {
	Title      string
	Content    string
	FolderID   int64
	IsFavorite bool
	IsTemplate bool
}

// PromptUpdate lists the fields to change. Nil fields are left untouched and
// a FolderID pointing at zero clears the folder.
type PromptUpdate struct {
	Title      *string
	Content    *string
	FolderID   *int64
	IsFavorite *bool
	IsTemplate *bool
}

// Empty reports whether the update would change nothing.
func (u PromptUpdate) Empty() bool {
	return u.Title == nil && u.Content == nil && u.FolderID == nil &&
		u.IsFavorite == nil && u.IsTemplate == nil
}

// Filter narrows the prompts returned by a store. Zero values mean "any".
// TagIDs match prompts carrying at least one of the listed tags.
type Filter struct {
	FolderID   *int64
	TagIDs     []int64
	IsFavorite *bool
	IsTemplate *bool
}

// Stats summarises the library.
type Stats struct {
	Prompts   int `json:"prompts"`
	Favorites int `json:"favorites"`
	Templates int `json:"templates"`
	Untagged  int `json:"untagged"`
	Folders   int `json:"folders"`
	Tags      int `json:"tags"`
}

// PromptTagLink joins a prompt to a tag in exported snapshots.
type PromptTagLink struct {
	PromptID int64 `json:"prompt_id" yaml:"prompt_id"`
	TagID    int64 `json:"tag_id"    yaml:"tag_id"`
}

// Snapshot is a full copy of a library used for export and import.
type Snapshot struct {
	ExportedAt string          `json:"export_timestamp" yaml:"export_timestamp"`
	Folders    []Folder        `json:"folders"          yaml:"folders"`
	Tags       []Tag           `json:"tags"             yaml:"tags"`
	Prompts    []Prompt        `json:"prompts"          yaml:"prompts"`
	PromptTags []PromptTagLink `json:"prompt_tags"      yaml:"prompt_tags"`
}

// ImportReport counts the records created by an import.
type ImportReport struct {
	Folders int `json:"folders"`
	Tags    int `json:"tags"`
	Prompts int `json:"prompts"`
}

// DefaultTagColor is assigned to tags created without an explicit color.
const DefaultTagColor = "#007bff"

// Now formats the current UTC time the way records store timestamps.
func Now() string {
	return time.Now().UTC().Format(constants.TimeLayout)
}

// TagNames returns the names of tags in order.
func TagNames(tags []Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

// JoinTagNames joins tag names with sep.
func JoinTagNames(tags []Tag, sep string) string {
	return strings.Join(TagNames(tags), sep)
}

// Int64 returns a pointer to v, for building filters and updates.
func Int64(v int64) *int64 { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
