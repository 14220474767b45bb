package root

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/constants"
	"github.com/Paintersrp/promptorg/internal/logger"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/cmd/backup"
	"github.com/Paintersrp/promptorg/pkg/cmd/browse"
	"github.com/Paintersrp/promptorg/pkg/cmd/changeEditor"
	"github.com/Paintersrp/promptorg/pkg/cmd/export"
	"github.com/Paintersrp/promptorg/pkg/cmd/folder"
	"github.com/Paintersrp/promptorg/pkg/cmd/importer"
	"github.com/Paintersrp/promptorg/pkg/cmd/initialize"
	"github.com/Paintersrp/promptorg/pkg/cmd/pick"
	"github.com/Paintersrp/promptorg/pkg/cmd/prompt"
	"github.com/Paintersrp/promptorg/pkg/cmd/search"
	"github.com/Paintersrp/promptorg/pkg/cmd/serve"
	"github.com/Paintersrp/promptorg/pkg/cmd/stats"
	"github.com/Paintersrp/promptorg/pkg/cmd/syntax"
	"github.com/Paintersrp/promptorg/pkg/cmd/tag"
	"github.com/Paintersrp/promptorg/pkg/cmd/template"
	"github.com/Paintersrp/promptorg/pkg/cmd/views"
	"github.com/Paintersrp/promptorg/pkg/cmd/workspace"
)

// stateless commands run before the library is opened.
var stateless = map[string]bool{
	"init":       true,
	"syntax":     true,
	"help":       true,
	"completion": true,

	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

// NewCmdRoot builds the command tree. The state is filled in before any
// subcommand that needs the library runs.
func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	var (
		logLevel string
		logEnv   string
	)

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Organize, search and render your prompt library",
		Long: heredoc.Doc(`
			promptorg keeps a library of prompts in folders and tags, searches it
			with a small query language and fills template variables on demand.

			Start with "promptorg init", then add prompts with "promptorg prompt add"
			and find them with "promptorg search". See "promptorg syntax" for the
			query language.
		`),
		Example: heredoc.Doc(`
			promptorg search 'tag:email AND -draft'
			promptorg template use email --set recipient_name=Ada
			promptorg browse --view favorites
		`),
		Version:       constants.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.NewLogger(logEnv, logLevel)
			if err != nil {
				return err
			}
			s.Logger = log
			cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))

			if skipState(cmd) {
				return nil
			}

			st, err := state.NewState(cmd.Context(), state.Options{
				Workspace: viper.GetString("workspace_override"),
				Home:      s.Home,
				Logger:    log,
			})
			var initErr *config.ConfigInitError
			if errors.As(err, &initErr) {
				return fmt.Errorf("%w (run \"%s init\" to finish setup)", err, constants.AppName)
			}
			if err != nil {
				return err
			}
			*s = *st
			return nil
		},
	}

	cmd.PersistentFlags().StringP("workspace", "w", "", "Run against this workspace without switching")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logEnv, "log-env", "dev", "Log format: dev for console, prod for JSON")
	_ = viper.BindPFlag("workspace_override", cmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindEnv("workspace_override", constants.EnvPrefix+"_WORKSPACE")

	cmd.AddCommand(
		initialize.NewCmdInit(s),
		search.NewCmdSearch(s),
		syntax.NewCmdSyntax(),
		prompt.NewCmdPrompt(s),
		folder.NewCmdFolder(s),
		tag.NewCmdTag(s),
		template.NewCmdTemplate(s),
		views.NewCmdViews(s),
		export.NewCmdExport(s),
		importer.NewCmdImport(s),
		backup.NewCmdBackup(s),
		stats.NewCmdStats(s),
		pick.NewCmdPick(s),
		browse.NewCmdBrowse(s),
		serve.NewCmdServe(s),
		workspace.NewCmdWorkspace(s),
		changeEditor.NewCmdChangeEditor(s),
	)

	return cmd, nil
}

// skipState reports whether cmd runs without an open library: init, syntax,
// help and shell completion.
func skipState(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Parent() != nil && c.Parent().Parent() == nil {
			return stateless[c.Name()]
		}
	}
	return false
}
