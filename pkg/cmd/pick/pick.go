package pick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/fzf"
	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/state"
	searchcmd "github.com/Paintersrp/promptorg/pkg/cmd/search"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

var (
	// choose opens the fuzzy finder over results.
	choose = func(results []search.Result, header, query string) (search.Result, error) {
		return fzf.NewFuzzyFinder(results, header).Run(query)
	}
	copyContent = fzf.Copy
)

func NewCmdPick(s *state.State) *cobra.Command {
	var (
		view  string
		fuzzy string
	)

	cmd := &cobra.Command{
		Use:   "pick [query]",
		Short: "Fuzzy find a prompt and print or copy it",
		Long: heredoc.Doc(`
			Narrow the library with an optional search query, then pick a prompt
			with the fuzzy finder. The chosen prompt's content is printed, or copied
			to the clipboard with --copy.
		`),
		Example: heredoc.Doc(`
			promptorg pick --copy
			promptorg pick tag:email --fuzzy follow
			promptorg pick --view favorites
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := flags.HandleFilter(ctx, cmd, s.ViewManager)
			if err != nil {
				return err
			}

			results, err := searchcmd.Run(ctx, s, view, strings.Join(args, " "), filter)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No prompts match")
				return nil
			}

			header := s.WorkspaceName
			if view != "" {
				header += " · " + view
			}

			r, err := choose(results, header, fuzzy)
			if errors.Is(err, fzf.ErrNoSelection) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Nothing selected")
				return nil
			}
			if err != nil {
				return err
			}

			if flags.HandleCopy(cmd) {
				if err := copyContent(r.Content); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %q to the clipboard\n", r.Title)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), r.Content)
			return nil
		},
	}

	flags.AddFilter(cmd)
	flags.AddCopy(cmd)
	cmd.Flags().StringVarP(&view, "view", "v", "", "Pick from a saved view")
	cmd.Flags().StringVar(&fuzzy, "fuzzy", "", "Initial text for the fuzzy finder")

	return cmd
}
