package flags

import (
	"fmt"
	"os"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/spf13/cobra"

	"github.com/Paintersrp/promptorg/internal/render"
)

func AddYes(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

// Confirm asks before a destructive action. --yes answers for the user; without
// it a terminal is required.
func Confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	if !render.IsTerminal(os.Stdin) {
		return false, fmt.Errorf("%s: pass --yes to confirm when not running in a terminal", question)
	}
	return confirmation.New(question, confirmation.No).RunPrompt()
}
