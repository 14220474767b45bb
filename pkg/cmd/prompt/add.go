package prompt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/editor"
	"github.com/Paintersrp/promptorg/internal/exchange"
	"github.com/Paintersrp/promptorg/internal/render"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/templater"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func newCmdAdd(s *state.State) *cobra.Command {
	var (
		content  string
		file     string
		folder   string
		tags     string
		favorite bool
		template bool
	)

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a prompt",
		Long: `Add a prompt to the library. The content comes from --content, --file,
--paste or standard input, and otherwise is written in your editor.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			title := ""
			if len(args) > 0 {
				title = strings.TrimSpace(args[0])
			}
			tagNames := arg.HandleTags(tags)

			switch {
			case content != "":
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				if ext := strings.ToLower(filepath.Ext(file)); ext == ".md" || ext == ".markdown" {
					mp, err := exchange.ParseMarkdownPrompt(file, data)
					if err != nil {
						return err
					}
					content = mp.Content
					if title == "" {
						title = mp.Title
					}
					tagNames = append(tagNames, mp.Tags...)
				} else {
					content = string(data)
				}
			default:
				pasted, ok, err := flags.HandlePaste(cmd)
				if err != nil {
					return err
				}
				if ok {
					content = pasted
					break
				}
				if content, err = readContent(cmd, s); err != nil {
					return err
				}
			}

			if title == "" {
				return fmt.Errorf("error: No title given. Try again")
			}
			if strings.TrimSpace(content) == "" {
				return fmt.Errorf("prompt content cannot be empty")
			}

			fid, err := folderID(ctx, s, folder)
			if err != nil {
				return err
			}

			id, err := s.Store.CreatePrompt(ctx, store.NewPrompt{
				Title:      title,
				Content:    strings.TrimRight(content, "\n"),
				FolderID:   fid,
				IsFavorite: favorite,
				IsTemplate: template,
			})
			if err != nil {
				return err
			}
			if err := attachTags(ctx, s, id, arg.HandleTags(strings.Join(tagNames, ","))); err != nil {
				return err
			}

			if template {
				for _, issue := range templater.ValidateSyntax(content) {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
				}
			}

			s.Logger.Debug("prompt created", zap.Int64("id", id), zap.String("title", title))
			fmt.Fprintf(cmd.OutOrStdout(), "Created prompt #%d %q\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVar(&content, "content", "", "Prompt content")
	cmd.Flags().StringVar(&file, "file", "", "Read the content from a file (markdown files may carry a title and tags)")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder to file the prompt in")
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "Comma separated tags")
	cmd.Flags().BoolVar(&favorite, "favorite", false, "Mark the prompt as a favorite")
	cmd.Flags().BoolVar(&template, "template", false, "Mark the prompt as a template")
	flags.AddPaste(cmd)

	return cmd
}

// readContent takes piped input, or opens the editor when attached to a
// terminal.
func readContent(cmd *cobra.Command, s *state.State) (string, error) {
	if !render.IsTerminal(os.Stdin) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read prompt from stdin: %w", err)
		}
		return string(data), nil
	}
	return editor.Edit(cmd.Context(), s.Effective.Editor, "", os.Stdin, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
