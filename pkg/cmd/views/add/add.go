package add

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/views"
)

func NewCmdViewAdd(s *state.State) *cobra.Command {
	var (
		name   string
		query  string
		folder string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a saved search",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			trimmedName := strings.TrimSpace(name)
			if trimmedName == "" {
				return fmt.Errorf("view name is required")
			}

			def := config.ViewDefinition{
				Query:  strings.TrimSpace(query),
				Folder: strings.TrimSpace(folder),
				Tags:   normalizeSlice(tags),
			}
			if cmd.Flags().Changed("favorite") {
				v, _ := cmd.Flags().GetBool("favorite")
				def.Favorite = &v
			}
			if cmd.Flags().Changed("template") {
				v, _ := cmd.Flags().GetBool("template")
				def.Template = &v
			}

			if err := s.Config.AddView(trimmedName, def); err != nil {
				return err
			}
			s.ViewManager = views.NewViewManager(s.Store, s.Workspace)

			// Resolve once so a typo in a folder or tag name shows up now.
			if _, err := s.ViewManager.Resolve(cmd.Context(), trimmedName); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			cmd.Printf("Added view %q\n", trimmedName)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the view to add")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search query of the view")
	cmd.Flags().StringVarP(&folder, "folder", "f", "", "Folder the view is limited to")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tags the view is limited to (any of)")
	cmd.Flags().Bool("favorite", false, "Only favorites (--favorite=false for non-favorites)")
	cmd.Flags().Bool("template", false, "Only templates (--template=false for plain prompts)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func normalizeSlice(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
