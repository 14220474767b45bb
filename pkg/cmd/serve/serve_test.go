package serve

import (
	"testing"

	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func TestServeStopsAtEndOfInput(t *testing.T) {
	st := cmdtest.NewState(t)

	if _, err := cmdtest.ExecuteIn(NewCmdServe(st), "", "--no-watch"); err != nil {
		t.Fatalf("serve --no-watch: %v", err)
	}
	if _, err := cmdtest.ExecuteIn(NewCmdServe(st), ""); err != nil {
		t.Fatalf("serve: %v", err)
	}
}
