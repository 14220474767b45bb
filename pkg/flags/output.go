package flags

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

func AddJSON(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print machine readable JSON")
}

func HandleJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

// WriteJSON prints v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
