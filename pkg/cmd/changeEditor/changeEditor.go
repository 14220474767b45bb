package changeEditor

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
)

func NewCmdChangeEditor(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change-editor <editor>",
		Short: "Change the editor used for prompt content",
		Long: heredoc.Docf(`
			Update the editor of the active workspace and save it to the config file.
			Supported editors: %s. "custom" runs $VISUAL or $EDITOR.
		`, strings.Join(config.EditorNames(), ", ")),
		Example: heredoc.Doc(`
			promptorg change-editor nvim
			promptorg change-editor code
		`),
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.EditorNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			editor := strings.TrimSpace(args[0])
			if err := s.Config.ChangeEditor(editor); err != nil {
				return err
			}
			s.Effective.Editor = editor

			fmt.Fprintf(cmd.OutOrStdout(), "Editor for workspace %q set to %s\n", s.WorkspaceName, editor)
			return nil
		},
	}

	return cmd
}
