package backup

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	objbackup "github.com/Paintersrp/promptorg/internal/backup"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

// newBackup builds the writer for the active workspace.
var newBackup = func(ctx context.Context, s *state.State) (*objbackup.Backup, error) {
	return s.Backup(ctx)
}

func NewCmdBackup(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload a JSON snapshot of the library to S3",
		Long: heredoc.Doc(`
			Upload a JSON snapshot of the active workspace to the S3 bucket set in
			the workspace's backup settings. Credentials are read from
			PROMPTORG_AWS_ACCESS_KEY_ID and PROMPTORG_AWS_SECRET_ACCESS_KEY, or the
			default AWS credential chain.
		`),
		Example: heredoc.Doc(`
			promptorg backup
			promptorg backup restore prompts/promptorg-20240101-120000.json
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, err := newBackup(ctx, s)
			if err != nil {
				return err
			}

			snap, err := s.Store.Export(ctx)
			if err != nil {
				return err
			}
			key, err := b.Run(ctx, snap)
			if err != nil {
				return fmt.Errorf("backup: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d prompts to %s\n", len(snap.Prompts), key)
			return nil
		},
	}

	cmd.AddCommand(newCmdRestore(s))
	return cmd
}

func newCmdRestore(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <key>",
		Short: "Import a backup into the active workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ok, err := flags.Confirm(cmd, fmt.Sprintf("Import backup %s into this workspace?", args[0]))
			if err != nil || !ok {
				return err
			}

			b, err := newBackup(ctx, s)
			if err != nil {
				return err
			}
			snap, err := b.Restore(ctx, args[0])
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}
			report, err := s.Store.Import(ctx, snap)
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d prompts, %d folders and %d tags\n",
				report.Prompts, report.Folders, report.Tags)
			return nil
		},
	}

	flags.AddYes(cmd)
	return cmd
}
