package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func newCmdList(s *state.State) *cobra.Command {
	var untagged bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List prompts, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			filter, err := flags.HandleFilter(ctx, cmd, s.Store)
			if err != nil {
				return err
			}

			var prompts []store.Prompt
			if untagged {
				prompts, err = s.Store.UntaggedPrompts(ctx)
			} else {
				prompts, err = s.Store.Prompts(ctx, filter)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, prompts)
			}
			if len(prompts) == 0 {
				fmt.Fprintln(out, "No prompts found")
				return nil
			}
			for _, p := range prompts {
				mark := " "
				if p.IsFavorite {
					mark = "★"
				}
				kind := ""
				if p.IsTemplate {
					kind = " [template]"
				}
				fmt.Fprintf(out, "%s #%-4d %s%s\n", mark, p.ID, p.Title, kind)
			}
			return nil
		},
	}

	flags.AddFilter(cmd)
	flags.AddJSON(cmd)
	cmd.Flags().BoolVar(&untagged, "untagged", false, "Only prompts without tags")

	return cmd
}
