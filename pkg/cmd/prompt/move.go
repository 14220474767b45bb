package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/arg"
)

func newCmdMove(s *state.State) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "mv [id...] --to [folder]",
		Short: "Move prompts to a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := arg.HandleIDs(args)
			if err != nil {
				return err
			}
			fid, err := folderID(cmd.Context(), s, to)
			if err != nil {
				return err
			}

			n, err := s.Store.MovePrompts(cmd.Context(), ids, fid)
			if err != nil {
				return err
			}

			dest := to
			if fid == 0 {
				dest = "no folder"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d prompt(s) to %s\n", n, dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", `Destination folder ("none" to unfile)`)
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
