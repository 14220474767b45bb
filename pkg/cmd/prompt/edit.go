package prompt

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/editor"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/arg"
)

func newCmdEdit(s *state.State) *cobra.Command {
	var (
		title   string
		content string
		folder  string
	)

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a prompt",
		Long: `Change a prompt's fields. Without any field flags the content opens in
your editor. Every content change is kept in the prompt history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}
			p, err := s.Store.Prompt(ctx, id)
			if err != nil {
				return fmt.Errorf("prompt %d: %w", id, err)
			}

			var u store.PromptUpdate
			fl := cmd.Flags()
			if fl.Changed("title") {
				u.Title = store.String(strings.TrimSpace(title))
			}
			if fl.Changed("content") {
				u.Content = store.String(content)
			}
			if fl.Changed("folder") {
				fid, err := folderID(ctx, s, folder)
				if err != nil {
					return err
				}
				u.FolderID = store.Int64(fid)
			}
			if fl.Changed("favorite") {
				v, _ := fl.GetBool("favorite")
				u.IsFavorite = store.Bool(v)
			}
			if fl.Changed("template") {
				v, _ := fl.GetBool("template")
				u.IsTemplate = store.Bool(v)
			}

			if u.Empty() {
				edited, err := editor.Edit(ctx, s.Effective.Editor, p.Content, os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				edited = strings.TrimRight(edited, "\n")
				if edited == p.Content {
					fmt.Fprintln(cmd.OutOrStdout(), "No changes")
					return nil
				}
				u.Content = store.String(edited)
			}

			if u.Content != nil && strings.TrimSpace(*u.Content) == "" {
				return fmt.Errorf("prompt content cannot be empty")
			}

			if err := s.Store.UpdatePrompt(ctx, id, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated prompt #%d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&content, "content", "", "New content")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", `Move to this folder ("none" to unfile)`)
	cmd.Flags().Bool("favorite", false, "Set or clear the favorite flag")
	cmd.Flags().Bool("template", false, "Set or clear the template flag")

	return cmd
}
