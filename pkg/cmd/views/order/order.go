package order

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/views"
)

func NewCmdViewOrder(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "order <view>...",
		Short: "Set the order saved views are listed and cycled in",
		Long: "Saved views named here are listed after the built-in views in the given order. " +
			"Views left out follow alphabetically.",
		Example: "promptorg view order daily code writing",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				if !s.ViewManager.Has(strings.TrimSpace(name)) {
					return fmt.Errorf("unknown view %q. Available views are: %s", name, s.ViewManager.GetAvailableViews())
				}
			}

			if err := s.Config.SetViewOrder(args); err != nil {
				return err
			}
			s.ViewManager = views.NewViewManager(s.Store, s.Workspace)

			cmd.Printf("View order: %s\n", s.ViewManager.GetAvailableViews())
			return nil
		},
	}
}
