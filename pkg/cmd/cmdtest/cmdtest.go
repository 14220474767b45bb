// Package cmdtest builds throwaway workspaces for command tests.
package cmdtest

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
)

// DefaultConfig is a single sqlite workspace editing with vim.
const DefaultConfig = `current_workspace: default
workspaces:
  default:
    editor: vim
    database:
      driver: sqlite
`

// Home prepares a temporary home directory holding cfg as the config file.
func Home(t testing.TB, cfg string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)

	if cfg != "" {
		path := config.GetConfigPath(home)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create config dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
	}
	return home
}

// NewState opens a state on a fresh workspace.
func NewState(t testing.TB) *state.State {
	t.Helper()
	home := Home(t, DefaultConfig)

	st, err := state.NewState(context.Background(), state.Options{Home: home})
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// Execute runs cmd with args and returns everything it printed.
func Execute(cmd *cobra.Command, args ...string) (string, error) {
	return ExecuteIn(cmd, "", args...)
}

// ExecuteIn is Execute with stdin.
func ExecuteIn(cmd *cobra.Command, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewBufferString(stdin))
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}
