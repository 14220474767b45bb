package flags

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/views"
)

func AddFilter(cmd *cobra.Command) {
	cmd.Flags().StringP("folder", "f", "", "Only prompts in this folder")
	cmd.Flags().StringSliceP("tag", "t", nil, "Only prompts carrying any of these tags")
	cmd.Flags().Bool("favorite", false, "Only favorites (--favorite=false for non-favorites)")
	cmd.Flags().Bool("template", false, "Only templates (--template=false for plain prompts)")
}

// HandleFilter turns the filter flags into a store filter. Boolean flags only
// constrain the result when they were given explicitly.
func HandleFilter(ctx context.Context, cmd *cobra.Command, res views.Resolver) (store.Filter, error) {
	var f store.Filter

	folder, err := cmd.Flags().GetString("folder")
	if err != nil {
		return f, err
	}
	if folder = strings.TrimSpace(folder); folder != "" {
		found, err := res.FolderByName(ctx, folder)
		if err != nil {
			return f, fmt.Errorf("folder %q: %w", folder, err)
		}
		f.FolderID = store.Int64(found.ID)
	}

	tags, err := cmd.Flags().GetStringSlice("tag")
	if err != nil {
		return f, err
	}
	for _, name := range tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := res.TagByName(ctx, name)
		if err != nil {
			return f, fmt.Errorf("tag %q: %w", name, err)
		}
		f.TagIDs = append(f.TagIDs, tag.ID)
	}

	if cmd.Flags().Changed("favorite") {
		v, _ := cmd.Flags().GetBool("favorite")
		f.IsFavorite = store.Bool(v)
	}
	if cmd.Flags().Changed("template") {
		v, _ := cmd.Flags().GetBool("template")
		f.IsTemplate = store.Bool(v)
	}

	return f, nil
}

// Merge layers the explicit flags in over a view's filter.
func Merge(base, over store.Filter) store.Filter {
	out := base
	if over.FolderID != nil {
		out.FolderID = over.FolderID
	}
	if len(over.TagIDs) > 0 {
		out.TagIDs = over.TagIDs
	}
	if over.IsFavorite != nil {
		out.IsFavorite = over.IsFavorite
	}
	if over.IsTemplate != nil {
		out.IsTemplate = over.IsTemplate
	}
	return out
}
