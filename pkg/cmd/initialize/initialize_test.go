package initialize

import (
	"context"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func TestInitCreatesConfigAndSeedsStarters(t *testing.T) {
	home := cmdtest.Home(t, "")
	s := &state.State{Home: home}
	t.Cleanup(func() { s.Close() })

	out, err := cmdtest.Execute(NewCmdInit(s), "--editor", "nvim")
	if err != nil {
		t.Fatalf("init: %v\n%s", err, out)
	}
	if !strings.Contains(out, `Initialized workspace "default"`) || !strings.Contains(out, "Added 4 starter templates") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if s.Store == nil {
		t.Fatal("expected state to be loaded")
	}

	prompts, err := s.Store.Prompts(context.Background(), store.Filter{IsTemplate: store.Bool(true)})
	if err != nil {
		t.Fatal(err)
	}
	if len(prompts) != 4 {
		t.Fatalf("expected 4 template prompts, got %d", len(prompts))
	}
	tag, err := s.Store.TagByName(context.Background(), "email")
	if err != nil || tag.Name != "email" {
		t.Fatalf("expected starter tags, got %v %v", tag, err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatal(err)
	}
	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		t.Fatal(err)
	}
	if ws.Editor != "nvim" {
		t.Fatalf("expected editor saved, got %q", ws.Editor)
	}
}

func TestInitAgainKeepsLibrary(t *testing.T) {
	home := cmdtest.Home(t, "")
	s := &state.State{Home: home}
	t.Cleanup(func() { s.Close() })

	if _, err := cmdtest.Execute(NewCmdInit(s), "--editor", "nvim"); err != nil {
		t.Fatal(err)
	}
	out, err := cmdtest.Execute(NewCmdInit(s), "--editor", "hx")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "starter templates") {
		t.Fatalf("library should not be seeded twice:\n%s", out)
	}
	if s.Effective.Editor != "hx" {
		t.Fatalf("expected editor hx, got %q", s.Effective.Editor)
	}

	st, err := s.Store.Statistics(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Prompts != 4 {
		t.Fatalf("expected 4 prompts, got %d", st.Prompts)
	}
}

func TestInitNoStarters(t *testing.T) {
	home := cmdtest.Home(t, "")
	s := &state.State{Home: home}
	t.Cleanup(func() { s.Close() })

	if _, err := cmdtest.Execute(NewCmdInit(s), "--editor", "vim", "--no-starters"); err != nil {
		t.Fatal(err)
	}
	st, err := s.Store.Statistics(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Prompts != 0 {
		t.Fatalf("expected empty library, got %d prompts", st.Prompts)
	}
}

func TestInitRejectsBadSettings(t *testing.T) {
	home := cmdtest.Home(t, "")
	s := &state.State{Home: home}

	if _, err := cmdtest.Execute(NewCmdInit(s), "--editor", "notepad"); err == nil {
		t.Fatal("expected invalid editor error")
	}
	if _, err := cmdtest.Execute(NewCmdInit(s), "--editor", "vim", "--driver", "mysql"); err == nil {
		t.Fatal("expected invalid driver error")
	}
	if _, err := cmdtest.Execute(NewCmdInit(s), "--editor", "vim", "--driver", "postgres"); err == nil {
		t.Fatal("expected dsn to be required for postgres")
	}
}
