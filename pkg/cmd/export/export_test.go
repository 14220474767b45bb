package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func TestExportToFileInfersFormat(t *testing.T) {
	st := cmdtest.NewState(t)
	ctx := context.Background()
	if _, err := st.Store.CreatePrompt(ctx, store.NewPrompt{Title: "Greeting", Content: "Hello {name}"}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	out, err := cmdtest.Execute(NewCmdExport(st), path)
	if err != nil {
		t.Fatalf("export: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Exported 1 prompts to "+path) {
		t.Fatalf("unexpected output %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("export is not json: %v", err)
	}
	if len(snap.Prompts) != 1 || snap.Prompts[0].Title != "Greeting" {
		t.Fatalf("unexpected snapshot %+v", snap.Prompts)
	}
}

func TestExportMarkdownToStdout(t *testing.T) {
	st := cmdtest.NewState(t)
	ctx := context.Background()
	if _, err := st.Store.CreatePrompt(ctx, store.NewPrompt{Title: "Summarize", Content: "Summarize this"}); err != nil {
		t.Fatal(err)
	}

	out, err := cmdtest.Execute(NewCmdExport(st), "--format", "markdown", "--title", "My Prompts")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "My Prompts") || !strings.Contains(out, "Summarize this") {
		t.Fatalf("unexpected markdown export:\n%s", out)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	st := cmdtest.NewState(t)
	if _, err := cmdtest.Execute(NewCmdExport(st), "--format", "csv"); err == nil {
		t.Fatal("expected unsupported format error")
	}
	if _, err := cmdtest.Execute(NewCmdExport(st), filepath.Join(t.TempDir(), "noext")); err == nil {
		t.Fatal("expected error for a path without extension")
	}
}
