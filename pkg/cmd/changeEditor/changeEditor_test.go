package changeEditor

import (
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func TestChangeEditor(t *testing.T) {
	st := cmdtest.NewState(t)

	out, err := cmdtest.Execute(NewCmdChangeEditor(st), "nano")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "set to nano") {
		t.Fatalf("unexpected output %q", out)
	}

	cfg, err := config.Load(st.Home)
	if err != nil {
		t.Fatal(err)
	}
	ws, _ := cfg.ActiveWorkspace()
	if ws.Editor != "nano" || st.Effective.Editor != "nano" {
		t.Fatalf("editor not updated: saved %q, effective %q", ws.Editor, st.Effective.Editor)
	}

	if _, err := cmdtest.Execute(NewCmdChangeEditor(st), "notepad"); err == nil {
		t.Fatal("expected unsupported editor error")
	}
}
