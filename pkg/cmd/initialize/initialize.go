/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package initialize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/erikgeiser/promptkit/selection"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/render"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
)

type options struct {
	editor     string
	driver     string
	dsn        string
	path       string
	noStarters bool
}

func NewCmdInit(s *state.State) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:     "init",
		Aliases: []string{"initialize"},
		Short:   "Set up promptorg and seed the starter templates",
		Long: heredoc.Doc(`
			Create the config file if needed, choose the editor and database for the
			active workspace and open the library. An empty library is seeded with
			the starter templates.

			Running init again keeps existing settings unless flags override them.
		`),
		Example: heredoc.Doc(`
			promptorg init
			promptorg init --editor nvim
			promptorg init --driver postgres --dsn postgres://localhost/prompts
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.editor, "editor", "e", "", "Editor for prompt content ("+strings.Join(config.EditorNames(), ", ")+")")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "Database driver (sqlite or postgres)")
	cmd.Flags().StringVar(&opts.dsn, "dsn", "", "Postgres connection string")
	cmd.Flags().StringVar(&opts.path, "path", "", "SQLite database file")
	cmd.Flags().BoolVar(&opts.noStarters, "no-starters", false, "Do not seed the starter templates")

	return cmd
}

func run(cmd *cobra.Command, s *state.State, opts options) error {
	ctx := cmd.Context()

	home := s.Home
	if home == "" {
		h, err := state.GetHomeDir()
		if err != nil {
			return err
		}
		home = h
	}

	var initErr *config.ConfigInitError
	if err := config.EnsureConfigExists(home); err != nil && !errors.As(err, &initErr) {
		return err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return err
	}
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	if err := apply(ws, opts); err != nil {
		return err
	}
	if strings.TrimSpace(ws.Editor) == "" {
		editor, err := chooseEditor()
		if err != nil {
			return err
		}
		ws.Editor = editor
	}
	if ws.Database.Driver == "postgres" && strings.TrimSpace(ws.Database.DSN) == "" {
		return fmt.Errorf("--dsn is required for the postgres driver")
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	st, err := state.NewState(ctx, state.Options{Home: home, Logger: s.Logger})
	if err != nil {
		return err
	}
	_ = s.Close()
	*s = *st

	seeded := 0
	if !opts.noStarters {
		seeded, err = seedStarters(ctx, s)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Initialized workspace %q\n", s.WorkspaceName)
	fmt.Fprintf(out, "  config:   %s\n", cfg.GetConfigPath())
	fmt.Fprintf(out, "  editor:   %s\n", s.Effective.Editor)
	fmt.Fprintf(out, "  database: %s\n", s.Effective.Database.Driver)
	if seeded > 0 {
		fmt.Fprintf(out, "Added %d starter templates\n", seeded)
	}
	return nil
}

func apply(ws *config.Workspace, opts options) error {
	if e := strings.TrimSpace(opts.editor); e != "" {
		if err := config.ValidateEditor(e); err != nil {
			return err
		}
		ws.Editor = e
	}
	if d := strings.TrimSpace(opts.driver); d != "" {
		if err := config.ValidateDriver(d); err != nil {
			return err
		}
		ws.Database.Driver = d
	}
	if dsn := strings.TrimSpace(opts.dsn); dsn != "" {
		ws.Database.DSN = dsn
	}
	if p := strings.TrimSpace(opts.path); p != "" {
		ws.Database.Path = p
	}
	return nil
}

func chooseEditor() (string, error) {
	if !render.IsTerminal(os.Stdin) {
		return "", fmt.Errorf("no editor configured: pass --editor (%s)", strings.Join(config.EditorNames(), ", "))
	}
	sel := selection.New("Which editor should open prompts?", config.EditorNames())
	sel.Filter = nil
	return sel.RunPrompt()
}

// seedStarters adds the starter templates to an empty library.
func seedStarters(ctx context.Context, s *state.State) (int, error) {
	stats, err := s.Store.Statistics(ctx)
	if err != nil {
		return 0, err
	}
	if stats.Prompts > 0 {
		return 0, nil
	}

	n := 0
	for _, t := range s.Templater.Starters() {
		id, err := s.Store.CreatePrompt(ctx, store.NewPrompt{
			Title:      t.Title,
			Content:    t.Content,
			IsTemplate: true,
		})
		if err != nil {
			return n, fmt.Errorf("seed %s: %w", t.Name, err)
		}
		for _, name := range t.Tags {
			tagID, err := s.Store.EnsureTag(ctx, name, store.DefaultTagColor)
			if err != nil {
				return n, err
			}
			if err := s.Store.AddTag(ctx, id, tagID); err != nil {
				return n, err
			}
		}
		n++
	}
	s.Logger.Debug("seeded starter templates", zap.Int("count", n))
	return n, nil
}
