package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
)

// folderID resolves a folder name. "none" and "" mean no folder.
func folderID(ctx context.Context, s *state.State, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "none") {
		return 0, nil
	}
	f, err := s.Store.FolderByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("folder %q: %w", name, err)
	}
	return f.ID, nil
}

func folderName(ctx context.Context, s *state.State, id int64) string {
	if id == 0 {
		return ""
	}
	f, err := s.Store.Folder(ctx, id)
	if err != nil {
		return ""
	}
	return f.Name
}

func attachTags(ctx context.Context, s *state.State, promptID int64, names []string) error {
	for _, name := range names {
		tagID, err := s.Store.EnsureTag(ctx, name, store.DefaultTagColor)
		if err != nil {
			return err
		}
		if err := s.Store.AddTag(ctx, promptID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// load fetches a prompt together with its tags.
func load(ctx context.Context, s *state.State, id int64) (store.Prompt, error) {
	p, err := s.Store.Prompt(ctx, id)
	if err != nil {
		return store.Prompt{}, fmt.Errorf("prompt %d: %w", id, err)
	}
	if p.Tags, err = s.Store.PromptTags(ctx, id); err != nil {
		return store.Prompt{}, err
	}
	return p, nil
}

func firstLine(s string, max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	r := []rune(line)
	if len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return line
}
