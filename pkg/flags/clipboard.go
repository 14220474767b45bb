package flags

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

func AddCopy(cmd *cobra.Command) {
	cmd.Flags().BoolP("copy", "c", false, "Copy the result to the clipboard")
}

func HandleCopy(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("copy")
	return v
}

func AddPaste(cmd *cobra.Command) {
	cmd.Flags().Bool("paste", false, "Use the clipboard contents as the prompt content")
}

// HandlePaste returns the clipboard contents when --paste was given.
func HandlePaste(cmd *cobra.Command) (string, bool, error) {
	paste, err := cmd.Flags().GetBool("paste")
	if err != nil || !paste {
		return "", false, err
	}
	content, err := clipboard.ReadAll()
	if err != nil {
		return "", true, fmt.Errorf("read clipboard: %w", err)
	}
	return content, true, nil
}
