package tag

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdTag(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tag",
		Aliases: []string{"tags", "t"},
		Short:   "Manage tags and attach them to prompts",
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdList(s),
		newCmdRemove(s),
		newCmdAttach(s),
		newCmdDetach(s),
	)

	return cmd
}

func newCmdAdd(s *state.State) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if _, err := s.Store.CreateTag(cmd.Context(), name, color); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created tag %q\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", store.DefaultTagColor, "Tag color")
	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tags",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tags, err := s.Store.Tags(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, tags)
			}
			if len(tags) == 0 {
				fmt.Fprintln(out, "No tags")
				return nil
			}
			for _, t := range tags {
				fmt.Fprintf(out, "%-24s %s\n", t.Name, t.Color)
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func newCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a tag and detach it from every prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := s.Store.TagByName(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("tag %q: %w", args[0], err)
			}

			ok, err := flags.Confirm(cmd, fmt.Sprintf("Delete tag %q?", t.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			if err := s.Store.DeleteTag(cmd.Context(), t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %q\n", t.Name)
			return nil
		},
	}

	flags.AddYes(cmd)
	return cmd
}

func newCmdAttach(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "attach [tag] [id...]",
		Short: "Attach a tag to prompts, creating the tag if needed",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := arg.HandleIDs(args[1:])
			if err != nil {
				return err
			}
			tagID, err := s.Store.EnsureTag(ctx, args[0], store.DefaultTagColor)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if err := s.Store.AddTag(ctx, id, tagID); err != nil {
					return fmt.Errorf("tag prompt %d: %w", id, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %d prompt(s) with %q\n", len(ids), strings.TrimSpace(args[0]))
			return nil
		},
	}
}

func newCmdDetach(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "detach [tag] [id...]",
		Short: "Remove a tag from prompts",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids, err := arg.HandleIDs(args[1:])
			if err != nil {
				return err
			}
			t, err := s.Store.TagByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("tag %q: %w", args[0], err)
			}
			for _, id := range ids {
				if err := s.Store.RemoveTag(ctx, id, t.ID); err != nil {
					return fmt.Errorf("untag prompt %d: %w", id, err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %d prompt(s)\n", t.Name, len(ids))
			return nil
		},
	}
}
