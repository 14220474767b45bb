package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/store"
)

const (
	All       = "all"
	Favorites = "favorites"
	Templates = "templates"
)

var builtinOrder = []string{All, Favorites, Templates}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true)
	activeViewStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF")).
			Padding(0, 1)
	inactiveViewStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 1)
	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			SetString("│")
)

// View is a resolved saved search, ready to hand to the search engine.
type View struct {
	Name    string
	Query   string
	Filter  store.Filter
	BuiltIn bool
}

// Resolver looks up the folders and tags a view definition refers to by name.
type Resolver interface {
	FolderByName(ctx context.Context, name string) (store.Folder, error)
	TagByName(ctx context.Context, name string) (store.Tag, error)
}

// ViewManager manages the built-in views and the views saved in the active
// workspace.
type ViewManager struct {
	defs  map[string]config.ViewDefinition
	order []string
	res   Resolver
}

// NewViewManager creates a ViewManager from a workspace's view settings.
func NewViewManager(res Resolver, ws *config.Workspace) *ViewManager {
	vm := &ViewManager{
		defs: map[string]config.ViewDefinition{
			All:       {},
			Favorites: {Favorite: store.Bool(true)},
			Templates: {Template: store.Bool(true)},
		},
		res: res,
	}
	if ws != nil {
		for name, def := range ws.Views {
			vm.defs[name] = def
		}
		vm.order = ws.ViewOrder
	}
	return vm
}

// Names lists the views in display order: built-ins first, then view_order,
// then any remaining saved views alphabetically. A saved view may shadow a
// built-in of the same name without being listed twice.
func (vm *ViewManager) Names() []string {
	names := make([]string, 0, len(vm.defs))
	seen := make(map[string]bool, len(vm.defs))
	add := func(name string) {
		if _, ok := vm.defs[name]; !ok || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}

	for _, name := range builtinOrder {
		add(name)
	}
	for _, name := range vm.order {
		add(name)
	}

	var rest []string
	for name := range vm.defs {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}
	return names
}

// GetAvailableViews returns a comma-separated list of available view names.
func (vm *ViewManager) GetAvailableViews() string {
	return strings.Join(vm.Names(), ", ")
}

func (vm *ViewManager) Has(name string) bool {
	_, ok := vm.defs[name]
	return ok
}

// Resolve turns the named view into a query and a store filter. Folder and
// tag names that no longer exist are reported as store.ErrNotFound.
func (vm *ViewManager) Resolve(ctx context.Context, name string) (View, error) {
	def, ok := vm.defs[name]
	if !ok {
		return View{}, fmt.Errorf(
			"invalid view: %s. Available views are: %s",
			name,
			vm.GetAvailableViews(),
		)
	}

	v := View{
		Name:    name,
		Query:   def.Query,
		BuiltIn: isBuiltin(name),
		Filter: store.Filter{
			IsFavorite: def.Favorite,
			IsTemplate: def.Template,
		},
	}

	if folder := strings.TrimSpace(def.Folder); folder != "" {
		f, err := vm.res.FolderByName(ctx, folder)
		if err != nil {
			return View{}, fmt.Errorf("view %q: folder %q: %w", name, folder, err)
		}
		v.Filter.FolderID = store.Int64(f.ID)
	}

	for _, tagName := range def.Tags {
		tagName = strings.TrimSpace(tagName)
		if tagName == "" {
			continue
		}
		tag, err := vm.res.TagByName(ctx, tagName)
		if err != nil {
			return View{}, fmt.Errorf("view %q: tag %q: %w", name, tagName, err)
		}
		v.Filter.TagIDs = append(v.Filter.TagIDs, tag.ID)
	}

	return v, nil
}

func isBuiltin(name string) bool {
	for _, b := range builtinOrder {
		if b == name {
			return true
		}
	}
	return false
}

// GetTitleForView renders the numbered view bar shown above the browser,
// highlighting the active view.
func (vm *ViewManager) GetTitleForView(active string) string {
	var viewStatus []string
	for i, name := range vm.Names() {
		label := fmt.Sprintf("[%d] %s", i+1, name)
		if name == active {
			viewStatus = append(viewStatus, activeViewStyle.Render(label))
		} else {
			viewStatus = append(viewStatus, inactiveViewStyle.Render(label))
		}
	}

	return fmt.Sprintf("%s %s",
		titleStyle.Render("Views:"),
		strings.Join(viewStatus, dividerStyle.String()),
	)
}
