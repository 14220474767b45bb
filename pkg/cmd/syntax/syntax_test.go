package syntax

import (
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/pkg/cmd/cmdtest"
)

func TestSyntaxPrintsHelpAndExamples(t *testing.T) {
	out, err := cmdtest.Execute(NewCmdSyntax())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Operators:", "Examples:", `title:"API Documentation"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSyntaxJSON(t *testing.T) {
	out, err := cmdtest.Execute(NewCmdSyntax(), "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "[") || !strings.Contains(out, `"description"`) {
		t.Fatalf("unexpected json %q", out)
	}
}
