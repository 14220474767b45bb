package workspace

import (
	"fmt"
	"maps"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdWorkspace(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Manage workspaces",
		Long: heredoc.Doc(`
			A workspace is a separate prompt library with its own database, editor,
			saved views and backup settings. Use --workspace on any command to run
			it against another workspace without switching.
		`),
	}

	cmd.AddCommand(
		newCmdWorkspaceList(s),
		newCmdWorkspaceUse(s),
		newCmdWorkspaceAdd(s),
		newCmdWorkspaceRemove(s),
	)

	return cmd
}

func newCmdWorkspaceList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List configured workspaces",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := s.Config.WorkspaceNames()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(cmd.OutOrStdout(), map[string]any{
					"current":    s.Config.CurrentWorkspace,
					"workspaces": names,
				})
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No workspaces configured")
				return nil
			}

			for _, name := range names {
				marker := " "
				if name == s.Config.CurrentWorkspace {
					marker = "*"
				}
				driver := ""
				if ws := s.Config.Workspaces[name]; ws != nil {
					driver = ws.Database.Driver
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %s\n", marker, name, driver)
			}

			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func newCmdWorkspaceUse(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:     "use <name>",
		Aliases: []string{"switch"},
		Short:   "Switch the active workspace",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(args[0])
			if target == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			if err := s.Config.SwitchWorkspace(target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Switched to workspace %q\n", target)
			return nil
		},
	}
}

func newCmdWorkspaceAdd(s *state.State) *cobra.Command {
	var (
		db          config.DatabaseConfig
		editor      string
		makeCurrent bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new workspace",
		Long: heredoc.Doc(`
			Add a workspace. Search, view, backup and editor settings are copied
			from the current workspace; the database is new.
		`),
		Example: heredoc.Doc(`
			promptorg workspace add work --use
			promptorg workspace add team --driver postgres --dsn postgres://db/prompts
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name is required")
			}

			ws := cloneWorkspaceSettings(s.Workspace)
			ws.Database = db
			if editor != "" {
				ws.Editor = editor
			}
			if ws.Database.Driver == "postgres" && strings.TrimSpace(ws.Database.DSN) == "" {
				return fmt.Errorf("--dsn is required for the postgres driver")
			}

			if err := s.Config.AddWorkspace(name, ws, makeCurrent); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added workspace %q\n", name)
			if makeCurrent {
				fmt.Fprintf(cmd.OutOrStdout(), "Switched to workspace %q\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&db.Driver, "driver", "", "Database driver (sqlite or postgres)")
	cmd.Flags().StringVar(&db.Path, "path", "", "SQLite database file")
	cmd.Flags().StringVar(&db.DSN, "dsn", "", "Postgres connection string")
	cmd.Flags().StringVarP(&editor, "editor", "e", "", "Editor for this workspace")
	cmd.Flags().BoolVar(&makeCurrent, "use", false, "Switch to the new workspace")

	return cmd
}

func newCmdWorkspaceRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a workspace from the config",
		Long: heredoc.Doc(`
			Remove a workspace from the config. Its database file is left on disk.
		`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name cannot be empty")
			}

			ok, err := flags.Confirm(cmd, fmt.Sprintf("Remove workspace %q?", name))
			if err != nil || !ok {
				return err
			}

			if err := s.Config.RemoveWorkspace(name); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed workspace %q\n", name)
			return nil
		},
	}

	flags.AddYes(cmd)
	return cmd
}

func cloneWorkspaceSettings(src *config.Workspace) *config.Workspace {
	if src == nil {
		return &config.Workspace{}
	}

	return &config.Workspace{
		Search:      src.Search,
		Views:       maps.Clone(src.Views),
		ViewOrder:   append([]string(nil), src.ViewOrder...),
		Backup:      src.Backup,
		Editor:      src.Editor,
		TemplateDir: src.TemplateDir,
	}
}
