package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var (
		view  string
		limit int
	)

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"s", "find"},
		Short:   "Search prompts",
		Long: heredoc.Doc(`
			Search prompts with the query language described by "promptorg syntax".

			Terms match title, content and tags unless a field is given. Terms are
			joined with AND unless OR or NOT is written between them.
		`),
		Example: heredoc.Doc(`
			promptorg search machine learning
			promptorg search 'title:"code review" AND -tags:draft'
			promptorg search 'content:/fix(es)? #\d+/' --folder Work
			promptorg search --view favorites summary
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			filter, err := flags.HandleFilter(ctx, cmd, s.Store)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("favorite") && s.Effective.Search.DefaultFavoritesOnly && view == "" {
				filter.IsFavorite = store.Bool(true)
			}

			results, err := Run(ctx, s, view, strings.Join(args, " "), filter)
			if err != nil {
				return err
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}

			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(cmd.OutOrStdout(), results)
			}
			PrintResults(cmd.OutOrStdout(), results)
			return nil
		},
	}

	flags.AddFilter(cmd)
	flags.AddJSON(cmd)
	cmd.Flags().StringVarP(&view, "view", "v", "", "Run within a saved view")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many results")

	return cmd
}

// Run searches within a view. The view's query and the user's query are
// parsed apart and a prompt has to match both. Filter flags override the
// view's filter.
func Run(ctx context.Context, s *state.State, viewName, query string, filter store.Filter) ([]search.Result, error) {
	queries := []string{query}
	if viewName != "" {
		v, err := s.ViewManager.Resolve(ctx, viewName)
		if err != nil {
			return nil, err
		}
		queries = search.ViewQueries(v.Query, query)
		filter = flags.Merge(v.Filter, filter)
	}

	results, err := s.Engine.SearchAll(ctx, filter, queries...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	s.Logger.Debug("search", zap.Strings("queries", queries), zap.String("view", viewName), zap.Int("results", len(results)))
	return results, nil
}

// PrintResults writes one block per result: id, title, folder and tags, then
// the highlighted snippets.
func PrintResults(w io.Writer, results []search.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No prompts match")
		return
	}

	for _, r := range results {
		line := fmt.Sprintf("#%-4d %s", r.ID, r.Title)
		if r.FolderName != "" {
			line += "  · " + r.FolderName
		}
		if r.Tags != "" {
			line += "  [" + r.Tags + "]"
		}
		fmt.Fprintln(w, line)
		for _, h := range r.Highlights {
			fmt.Fprintf(w, "      %s\n", h)
		}
	}

	noun := "results"
	if len(results) == 1 {
		noun = "result"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(results), noun)
}
