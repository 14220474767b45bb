package prompt

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
)

func NewCmdPrompt(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prompt",
		Aliases: []string{"p"},
		Short:   "Create, inspect and organise prompts",
		Long: heredoc.Doc(`
			Manage the prompts of the active workspace.

			Prompts are addressed by their numeric id, shown by "promptorg prompt list"
			and "promptorg search".
		`),
		Example: heredoc.Doc(`
			promptorg prompt add "Code review" --tags go,review --content "Review {code}"
			promptorg prompt show 12
			promptorg prompt mv 12 13 --to Work
		`),
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdShow(s),
		newCmdEdit(s),
		newCmdRemove(s),
		newCmdFavorite(s),
		newCmdMove(s),
		newCmdDuplicate(s),
		newCmdHistory(s),
		newCmdList(s),
	)

	return cmd
}
