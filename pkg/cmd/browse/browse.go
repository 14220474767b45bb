package browse

import (
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/fzf"
	"github.com/Paintersrp/promptorg/internal/state"
	tuibrowse "github.com/Paintersrp/promptorg/internal/tui/browse"
)

var runBrowser = tuibrowse.Run

func NewCmdBrowse(s *state.State) *cobra.Command {
	var view string

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Browse and search prompts interactively",
		Long: heredoc.Doc(`
			Open the full screen browser. Type a query and press enter to search,
			tab to move between the query and the results, c to copy the selected
			prompt and v to cycle through saved views.
		`),
		Example: heredoc.Doc(`
			promptorg browse
			promptorg browse --view favorites "tag:email"
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if view != "" && !s.ViewManager.Has(view) {
				_, err := s.ViewManager.Resolve(cmd.Context(), view)
				return err
			}
			return runBrowser(cmd.Context(), tuibrowse.Deps{
				Searcher:  s.Engine,
				Views:     s.ViewManager,
				Stats:     s.Store,
				Workspace: s.WorkspaceName,
				Copy:      fzf.Copy,
			}, view, strings.Join(args, " "))
		},
	}

	cmd.Flags().StringVarP(&view, "view", "v", "", "Start in a saved view")
	return cmd
}
