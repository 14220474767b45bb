package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/promptorg/internal/mcpserver"
	"github.com/Paintersrp/promptorg/internal/state"
)

func NewCmdServe(s *state.State) *cobra.Command {
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prompt library to MCP clients over stdio",
		Long: heredoc.Doc(`
			Start a Model Context Protocol server on standard input and output.
			Clients can search prompts, fetch them by id, render templates and list
			the starter templates.

			User templates are reloaded while the server runs unless --no-watch is
			given. Logs go to standard error so they never mix with the protocol.
		`),
		Example: heredoc.Doc(`
			promptorg serve
			promptorg serve --workspace work --log-level debug
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := mcpserver.New(s.Store, s.Engine, s.Templater, s.Logger)
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			if noWatch {
				return srv.Serve(ctx, in, out)
			}

			g, gctx := errgroup.WithContext(ctx)
			watchCtx, cancelWatch := context.WithCancel(gctx)
			defer cancelWatch()

			g.Go(func() error {
				defer cancelWatch()
				return srv.Serve(gctx, in, out)
			})
			g.Go(func() error {
				return s.WatchTemplates(watchCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload user templates on change")
	return cmd
}
