package prompt

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func newCmdHistory(s *state.State) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:     "history [id]",
		Aliases: []string{"versions"},
		Short:   "List the saved versions of a prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}
			versions, err := s.Store.PromptVersions(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, versions)
			}
			if len(versions) == 0 {
				fmt.Fprintf(out, "Prompt #%d has no saved versions\n", id)
				return nil
			}

			// Versions are numbered oldest first; the store lists newest first.
			if version > 0 {
				if version > len(versions) {
					return fmt.Errorf("prompt %d has %d versions", id, len(versions))
				}
				fmt.Fprintln(out, versions[len(versions)-version].Content)
				return nil
			}

			for i, v := range versions {
				fmt.Fprintf(out, "v%-3d %s  %s\n", len(versions)-i, v.CreatedAt, firstLine(v.Content, 60))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&version, "version", "v", 0, "Print the content of this version")
	flags.AddJSON(cmd)

	return cmd
}
