package browse

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	search      key.Binding
	toggleFocus key.Binding
	copy        key.Binding
	changeView  key.Binding
	refresh     key.Binding
	quit        key.Binding
	forceQuit   key.Binding
}

func newKeyMap() *keyMap {
	return &keyMap{
		search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "search"),
		),
		toggleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		changeView: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "view"),
		),
		refresh: key.NewBinding(
			key.WithKeys("f9"),
			key.WithHelp("f9", "refresh"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.search, k.toggleFocus, k.copy, k.changeView, k.quit}
}
