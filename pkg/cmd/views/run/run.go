package run

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/search"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdViewRun(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [name] [query]",
		Short: "Run a saved search, optionally narrowing it with a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := search.Run(cmd.Context(), s, args[0], strings.Join(args[1:], " "), store.Filter{})
			if err != nil {
				return err
			}
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(cmd.OutOrStdout(), results)
			}
			search.PrintResults(cmd.OutOrStdout(), results)
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}
