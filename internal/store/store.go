// Package store defines the prompt library records and the storage contract
// implemented by the SQL backends.
package store

import "context"

// Store is the full prompt library. Implementations must be safe for use by
// a single command at a time; the SQL store is also safe for concurrent use.
type Store interface {
	CreateFolder(ctx context.Context, name string, parentID int64) (int64, error)
	Folder(ctx context.Context, id int64) (Folder, error)
	Folders(ctx context.Context) ([]Folder, error)
	ChildFolders(ctx context.Context, parentID int64) ([]Folder, error)
	FolderByName(ctx context.Context, name string) (Folder, error)
	RenameFolder(ctx context.Context, id int64, name string) error
	DeleteFolder(ctx context.Context, id int64) error

	CreatePrompt(ctx context.Context, p NewPrompt) (int64, error)
	Prompt(ctx context.Context, id int64) (Prompt, error)
	Prompts(ctx context.Context, f Filter) ([]Prompt, error)
	UpdatePrompt(ctx context.Context, id int64, u PromptUpdate) error
	DeletePrompt(ctx context.Context, id int64) error
	DuplicatePrompt(ctx context.Context, id int64, title string) (int64, error)
	MovePrompts(ctx context.Context, ids []int64, folderID int64) (int, error)
	PromptVersions(ctx context.Context, id int64) ([]PromptVersion, error)
	UntaggedPrompts(ctx context.Context) ([]Prompt, error)

	CreateTag(ctx context.Context, name, color string) (int64, error)
	EnsureTag(ctx context.Context, name, color string) (int64, error)
	Tags(ctx context.Context) ([]Tag, error)
	TagByName(ctx context.Context, name string) (Tag, error)
	PromptTags(ctx context.Context, promptID int64) ([]Tag, error)
	AddTag(ctx context.Context, promptID, tagID int64) error
	RemoveTag(ctx context.Context, promptID, tagID int64) error
	DeleteTag(ctx context.Context, id int64) error

	Statistics(ctx context.Context) (Stats, error)
	Export(ctx context.Context) (Snapshot, error)
	Import(ctx context.Context, snap Snapshot) (ImportReport, error)

	Close() error
}
