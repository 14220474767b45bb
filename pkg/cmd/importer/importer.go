package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/exchange"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
)

func NewCmdImport(s *state.State) *cobra.Command {
	var (
		format string
		folder string
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import prompts from exports or markdown files",
		Long: heredoc.Doc(`
			Import JSON or YAML exports, or markdown files holding a single prompt.

			Exports are merged into the library: folders, tags and prompts are
			created with new ids. A markdown file becomes one prompt; its first
			heading is the title and optional front matter may set tags.
		`),
		Example: heredoc.Doc(`
			promptorg import backup.json
			promptorg import notes/*.md --folder Imported
			cat export.yaml | promptorg import - --format yaml
		`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var folderID int64
			if folder != "" {
				f, err := s.Store.FolderByName(ctx, folder)
				if err != nil {
					return fmt.Errorf("folder %q: %w", folder, err)
				}
				folderID = f.ID
			}

			var total store.ImportReport
			for _, path := range args {
				report, err := importOne(ctx, s, cmd.InOrStdin(), path, format, folderID)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				total.Folders += report.Folders
				total.Tags += report.Tags
				total.Prompts += report.Prompts
				s.Logger.Debug("imported", zap.String("path", path), zap.Int("prompts", report.Prompts))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompts, %d folders and %d tags\n",
				total.Prompts, total.Folders, total.Tags)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "F", "", "Input format when it cannot be inferred (json, yaml, markdown)")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder for prompts imported from markdown")

	return cmd
}

func importOne(ctx context.Context, s *state.State, stdin io.Reader, path, format string, folderID int64) (store.ImportReport, error) {
	f, err := formatFor(path, format)
	if err != nil {
		return store.ImportReport{}, err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return store.ImportReport{}, err
	}

	if f == exchange.FormatMarkdown {
		return importMarkdown(ctx, s, path, data, folderID)
	}

	snap, err := exchange.Decode(bytes.NewReader(data), f)
	if err != nil {
		return store.ImportReport{}, err
	}
	return s.Store.Import(ctx, snap)
}

func formatFor(path, format string) (exchange.Format, error) {
	if format != "" {
		return exchange.ParseFormat(format)
	}
	if path == "-" {
		return "", fmt.Errorf("--format is required when reading standard input")
	}
	return exchange.FormatFromPath(path)
}

func importMarkdown(ctx context.Context, s *state.State, path string, data []byte, folderID int64) (store.ImportReport, error) {
	name := path
	if path == "-" {
		name = "stdin"
	}
	mp, err := exchange.ParseMarkdownPrompt(filepath.Base(name), data)
	if err != nil {
		return store.ImportReport{}, err
	}

	id, err := s.Store.CreatePrompt(ctx, store.NewPrompt{
		Title:    mp.Title,
		Content:  mp.Content,
		FolderID: folderID,
	})
	if err != nil {
		return store.ImportReport{}, err
	}

	report := store.ImportReport{Prompts: 1}
	for _, tag := range mp.Tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		if _, err := s.Store.TagByName(ctx, tag); err != nil {
			report.Tags++
		}
		tagID, err := s.Store.EnsureTag(ctx, tag, store.DefaultTagColor)
		if err != nil {
			return report, err
		}
		if err := s.Store.AddTag(ctx, id, tagID); err != nil {
			return report, err
		}
	}
	return report, nil
}
