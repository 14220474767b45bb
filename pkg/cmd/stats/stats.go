package stats

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdStats(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := s.Store.Statistics(cmd.Context())
			if err != nil {
				return err
			}
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(cmd.OutOrStdout(), st)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, state.FormatStats(s.WorkspaceName, st))
			fmt.Fprintln(w)
			rows := []struct {
				label string
				n     int
			}{
				{"Prompts", st.Prompts},
				{"Favorites", st.Favorites},
				{"Templates", st.Templates},
				{"Untagged", st.Untagged},
				{"Folders", st.Folders},
				{"Tags", st.Tags},
			}
			for _, r := range rows {
				fmt.Fprintf(w, "%-10s %d\n", r.label, r.n)
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}
