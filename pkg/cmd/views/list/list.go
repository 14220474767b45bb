package list

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdViewList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List views in display order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			type row struct {
				Name    string `json:"name"`
				Query   string `json:"query,omitempty"`
				BuiltIn bool   `json:"built_in"`
			}

			var rows []row
			for _, name := range s.ViewManager.Names() {
				r := row{Name: name}
				if def, ok := s.Workspace.Views[name]; ok {
					r.Query = def.Query
				} else {
					r.BuiltIn = true
				}
				rows = append(rows, r)
			}

			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, rows)
			}
			for _, r := range rows {
				desc := r.Query
				if r.BuiltIn {
					desc = "(built-in)"
				}
				fmt.Fprintln(out, strings.TrimRight(fmt.Sprintf("%-16s %s", r.Name, desc), " "))
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}
