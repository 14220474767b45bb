package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func newCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [id...]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete prompts and their history",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := arg.HandleIDs(args)
			if err != nil {
				return err
			}

			ok, err := flags.Confirm(cmd, fmt.Sprintf("Delete %d prompt(s)?", len(ids)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			for _, id := range ids {
				if err := s.Store.DeletePrompt(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete prompt %d: %w", id, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted prompt #%d\n", id)
			}
			return nil
		},
	}

	flags.AddYes(cmd)
	return cmd
}
