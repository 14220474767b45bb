package syntax

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdSyntax() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "syntax",
		Aliases: []string{"help-search"},
		Short:   "Explain the search query language",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, search.Examples)
			}

			fmt.Fprint(out, search.HelpText)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Examples:")
			for _, ex := range search.Examples {
				fmt.Fprintf(out, "  %-40s %s\n", ex.Query, ex.Description)
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}
