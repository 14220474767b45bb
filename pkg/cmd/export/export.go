package export

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/exchange"
	"github.com/Paintersrp/promptorg/internal/state"
)

func NewCmdExport(s *state.State) *cobra.Command {
	var (
		format  string
		opts    exchange.Options
		noGroup bool
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the library as JSON, YAML, markdown or text",
		Long: heredoc.Doc(`
			Export every folder, tag and prompt of the active workspace. JSON and YAML
			exports can be imported again; markdown and text are for reading.

			Without a file the export is written to standard output. The format
			defaults to the file extension, or JSON.
		`),
		Example: heredoc.Doc(`
			promptorg export prompts.json
			promptorg export --format markdown --sort-by title > prompts.md
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, args)
			if err != nil {
				return err
			}
			switch opts.SortBy {
			case "", "title", "created", "updated":
			default:
				return fmt.Errorf("invalid --sort-by %q (use title, created or updated)", opts.SortBy)
			}
			opts.GroupByFolder = !noGroup

			snap, err := s.Store.Export(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create export file: %w", err)
				}
				defer file.Close()
				w = file
			}

			if err := exchange.Export(w, snap, f, opts); err != nil {
				return fmt.Errorf("export: %w", err)
			}

			if len(args) == 1 && args[0] != "-" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d prompts to %s\n", len(snap.Prompts), args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", "", "json, yaml, markdown or txt")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Document title for markdown and text exports")
	cmd.Flags().StringVar(&opts.SortBy, "sort-by", "", "Sort prompts by title, created or updated")
	cmd.Flags().BoolVar(&opts.Descending, "desc", false, "Sort in descending order")
	cmd.Flags().BoolVar(&noGroup, "no-group", false, "Do not group markdown and text exports by folder")

	return cmd
}

func resolveFormat(format string, args []string) (exchange.Format, error) {
	if format != "" {
		return exchange.ParseFormat(format)
	}
	if len(args) == 1 && args[0] != "-" {
		return exchange.FormatFromPath(args[0])
	}
	return exchange.FormatJSON, nil
}
