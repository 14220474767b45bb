package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/arg"
)

func newCmdFavorite(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "fav [id]",
		Aliases: []string{"favorite", "star"},
		Short:   "Toggle the favorite flag of a prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}
			p, err := s.Store.Prompt(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("prompt %d: %w", id, err)
			}

			fav := !p.IsFavorite
			if err := s.Store.UpdatePrompt(cmd.Context(), id, store.PromptUpdate{IsFavorite: store.Bool(fav)}); err != nil {
				return err
			}

			if fav {
				fmt.Fprintf(cmd.OutOrStdout(), "★ Favorited %q\n", p.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unfavorited %q\n", p.Title)
			}
			return nil
		},
	}
}
