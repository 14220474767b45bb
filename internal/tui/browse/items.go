package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Paintersrp/promptorg/internal/search"
)

type item struct {
	result search.Result
}

func (i item) Title() string { return i.result.Title }

func (i item) Description() string {
	var parts []string
	if i.result.FolderName != "" {
		parts = append(parts, i.result.FolderName)
	}
	if i.result.Tags != "" {
		parts = append(parts, i.result.Tags)
	}
	if len(i.result.Highlights) > 0 {
		parts = append(parts, i.result.Highlights[0])
	}
	if len(parts) == 0 {
		return "No tags"
	}
	return strings.Join(parts, " · ")
}

func (i item) FilterValue() string { return i.result.Title }

func toItems(results []search.Result) []list.Item {
	items := make([]list.Item, len(results))
	for i, r := range results {
		items[i] = item{result: r}
	}
	return items
}
