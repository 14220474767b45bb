package prompt

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/render"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func newCmdShow(s *state.State) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:     "show [id]",
		Aliases: []string{"cat"},
		Short:   "Show a prompt",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := arg.HandleID(args)
			if err != nil {
				return err
			}
			p, err := load(cmd.Context(), s, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case flags.HandleJSON(cmd):
				return flags.WriteJSON(out, p)
			case raw:
				_, err := fmt.Fprintln(out, p.Content)
				return err
			}

			doc := render.FromPrompt(p, folderName(cmd.Context(), s, p.FolderID))
			if out == os.Stdout && render.IsTerminal(os.Stdout) {
				_, err := fmt.Fprint(out, render.Preview(doc, render.Width(os.Stdout)))
				return err
			}
			_, err = fmt.Fprint(out, doc.Markdown())
			return err
		},
	}

	cmd.Flags().BoolVarP(&raw, "raw", "r", false, "Print only the prompt content")
	flags.AddJSON(cmd)

	return cmd
}
