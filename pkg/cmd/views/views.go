package views

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	viewsadd "github.com/Paintersrp/promptorg/pkg/cmd/views/add"
	viewslist "github.com/Paintersrp/promptorg/pkg/cmd/views/list"
	viewsorder "github.com/Paintersrp/promptorg/pkg/cmd/views/order"
	viewsremove "github.com/Paintersrp/promptorg/pkg/cmd/views/remove"
	viewsrun "github.com/Paintersrp/promptorg/pkg/cmd/views/run"
)

func NewCmdViews(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"views"},
		Short:   "Manage saved searches",
		Long: heredoc.Doc(`
			Views are saved searches: a query plus folder, tag, favorite and template
			filters. The built-in views all, favorites and templates are always
			available. Use the subcommands to add or remove views without editing
			the configuration file manually.
		`),
	}

	cmd.AddCommand(
		viewsadd.NewCmdViewAdd(s),
		viewslist.NewCmdViewList(s),
		viewsorder.NewCmdViewOrder(s),
		viewsremove.NewCmdViewRemove(s),
		viewsrun.NewCmdViewRun(s),
	)

	return cmd
}
