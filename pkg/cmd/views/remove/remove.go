package remove

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/views"
)

func NewCmdViewRemove(s *state.State) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Remove a saved search",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("view name is required")
			}

			if err := s.Config.RemoveView(trimmed); err != nil {
				return err
			}
			s.ViewManager = views.NewViewManager(s.Store, s.Workspace)

			cmd.Printf("Removed view %q\n", trimmed)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the view to remove")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
