package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/arg"
)

func newCmdDuplicate(s *state.State) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:     "dup [id]",
		Aliases: []string{"duplicate", "cp"},
		Short:   "Copy a prompt with its tags",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}
			newID, err := s.Store.DuplicatePrompt(cmd.Context(), id, title)
			if err != nil {
				return fmt.Errorf("duplicate prompt %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Duplicated prompt #%d as #%d\n", id, newID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", `Title of the copy (default "<title> (copy)")`)
	return cmd
}
