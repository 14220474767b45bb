package template

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/fzf"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/templater"
	"github.com/Paintersrp/promptorg/pkg/arg"
	"github.com/Paintersrp/promptorg/pkg/flags"
)

func NewCmdTemplate(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tmpl"},
		Short:   "Work with {variable} templates",
		Long: heredoc.Doc(`
			Templates are prompts with {variable} placeholders. A template is either
			a prompt id or the name of a starter template ("promptorg template ls").
		`),
		Example: heredoc.Doc(`
			promptorg template vars 4
			promptorg template use email --set recipient=Ada --set topic=launch --copy
			promptorg template check 4
		`),
	}

	cmd.AddCommand(
		newCmdList(s),
		newCmdVars(s),
		newCmdUse(s),
		newCmdCheck(s),
	)

	return cmd
}

// resolve loads a template from a prompt id or a starter name.
func resolve(ctx context.Context, s *state.State, ref string) (templater.Template, error) {
	if id, err := arg.ParseID(ref); err == nil {
		p, err := s.Store.Prompt(ctx, id)
		if err != nil {
			return templater.Template{}, fmt.Errorf("prompt %d: %w", id, err)
		}
		return templater.FromContent(p.Title, p.Content), nil
	}
	return s.Templater.Get(ref)
}

func newCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the starter templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			starters := s.Templater.Starters()
			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, starters)
			}
			for _, t := range starters {
				names := make([]string, 0, len(t.Variables))
				for _, v := range t.Variables {
					names = append(names, v.Name)
				}
				fmt.Fprintf(out, "%-16s %s\n", t.Name, t.Title)
				if t.Description != "" {
					fmt.Fprintf(out, "%-16s %s\n", "", t.Description)
				}
				if len(names) > 0 {
					fmt.Fprintf(out, "%-16s variables: %s\n", "", strings.Join(names, ", "))
				}
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func newCmdVars(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vars [id|name]",
		Aliases: []string{"variables"},
		Short:   "Describe the variables of a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if flags.HandleJSON(cmd) {
				return flags.WriteJSON(out, t.Variables)
			}
			if len(t.Variables) == 0 {
				fmt.Fprintf(out, "%q has no variables\n", t.Title)
				return nil
			}
			for _, v := range t.Variables {
				kind := v.Type
				if kind == "" {
					kind = "text"
				}
				req := "optional"
				if v.Required {
					req = "required"
				}
				fmt.Fprintf(out, "{%s}  %s, %s", v.Name, kind, req)
				if v.Default != "" {
					fmt.Fprintf(out, ", default %q", v.Default)
				}
				if len(v.Choices) > 0 {
					fmt.Fprintf(out, ", one of %s", strings.Join(v.Choices, "|"))
				}
				fmt.Fprintln(out)
				if v.Description != "" {
					fmt.Fprintf(out, "    %s\n", v.Description)
				}
			}
			return nil
		},
	}

	flags.AddJSON(cmd)
	return cmd
}

func newCmdUse(s *state.State) *cobra.Command {
	var (
		values  map[string]string
		preview bool
	)

	cmd := &cobra.Command{
		Use:     "use [id|name]",
		Aliases: []string{"render", "fill"},
		Short:   "Fill a template's variables and print the result",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}

			var text string
			if preview {
				text = t.Preview(values)
			} else if text, err = t.Render(values); err != nil {
				var verr *templater.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("%w (set values with --set name=value)", verr)
				}
				return err
			}

			if flags.HandleCopy(cmd) {
				if err := fzf.Copy(text); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Copied %q to the clipboard\n", t.Title)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringToStringVarP(&values, "set", "s", nil, "Variable value as name=value (repeatable)")
	cmd.Flags().BoolVar(&preview, "preview", false, "Show [name] for values that are not set instead of failing")
	flags.AddCopy(cmd)

	return cmd
}

func newCmdCheck(s *state.State) *cobra.Command {
	return &cobra.Command{
		Use:   "check [id|name]",
		Short: "Report template syntax problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolve(cmd.Context(), s, args[0])
			if err != nil {
				return err
			}
			issues := t.Check()
			if len(issues) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%q looks good\n", t.Title)
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", issue)
			}
			return fmt.Errorf("%q has %d problem(s)", t.Title, len(issues))
		},
	}
}
