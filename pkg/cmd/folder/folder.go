package folder

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdFolder(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "folder",
		Aliases: []string{"folders", "f"},
		Short:   "Manage folders",
	}

	cmd.AddCommand(
		newCmdAdd(s),
		newCmdList(s),
		newCmdRename(s),
		newCmdRemove(s),
	)

	return cmd
}

func newCmdAdd(s *state.State) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var parentID int64
			if parent != "" {
				p, err := s.Store.FolderByName(ctx, parent)
				if err != nil {
					return fmt.Errorf("parent folder %q: %w", parent, err)
				}
				parentID = p.ID
			}

			id, err := s.Store.CreateFolder(ctx, args[0], parentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created folder %q (#%d)\n", strings.TrimSpace(args[0]), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent folder name")
	return cmd
}

func newCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list", "tree"},
		Short:   "Show the folder tree",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			folders, err := s.Store.Folders(cmd.Context())
			if err != nil {
				return err
			}
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(cmd.OutOrStdout(), folders)
			}
			if len(folders) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No folders")
				return nil
			}
			printTree(cmd.OutOrStdout(), folders)
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

// printTree prints folders indented under their parents. Folders whose parent
// is missing are printed at the top level.
func printTree(w io.Writer, folders []store.Folder) {
	known := make(map[int64]bool, len(folders))
	children := make(map[int64][]store.Folder)
	for _, f := range folders {
		known[f.ID] = true
	}
	for _, f := range folders {
		parent := f.ParentID
		if !known[parent] {
			parent = 0
		}
		children[parent] = append(children[parent], f)
	}

	var walk func(parent int64, depth int)
	walk = func(parent int64, depth int) {
		for _, f := range children[parent] {
			fmt.Fprintf(w, "%s%s (#%d)\n", strings.Repeat("  ", depth), f.Name, f.ID)
			walk(f.ID, depth+1)
		}
	}
	walk(0, 0)
}

func newCmdRename(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "rename [old] [new]",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookup(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			if err := s.Store.RenameFolder(cmd.Context(), f.ID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed folder %q to %q\n", f.Name, strings.TrimSpace(args[1]))
			return nil
		},
	}
}

func newCmdRemove(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a folder, moving its prompts and subfolders to its parent",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := lookup(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}

			ok, err := flags.Confirm(cmd, fmt.Sprintf("Delete folder %q?", f.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			if err := s.Store.DeleteFolder(cmd.Context(), f.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted folder %q\n", f.Name)
			return nil
		},
	}

	flags.AddYes(cmd)
	return cmd
}

func lookup(ctx context.Context, s *state.State, name string) (store.Folder, error) {
	f, err := s.Store.FolderByName(ctx, name)
	if err != nil {
		return store.Folder{}, fmt.Errorf("folder %q: %w", name, err)
	}
	return f, nil
}
