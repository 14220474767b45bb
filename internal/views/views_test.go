package views

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Paintersrp/promptorg/internal/config"
	"github.com/Paintersrp/promptorg/internal/store"
)

type fakeResolver struct {
	folders map[string]int64
	tags    map[string]int64
}

func (f fakeResolver) FolderByName(_ context.Context, name string) (store.Folder, error) {
	id, ok := f.folders[strings.ToLower(name)]
	if !ok {
		return store.Folder{}, store.ErrNotFound
	}
	return store.Folder{ID: id, Name: name}, nil
}

func (f fakeResolver) TagByName(_ context.Context, name string) (store.Tag, error) {
	id, ok := f.tags[name]
	if !ok {
		return store.Tag{}, store.ErrNotFound
	}
	return store.Tag{ID: id, Name: name}, nil
}

func newManager() *ViewManager {
	res := fakeResolver{
		folders: map[string]int64{"code": 4},
		tags:    map[string]int64{"go": 7, "review": 9},
	}
	ws := &config.Workspace{
		Views: map[string]config.ViewDefinition{
			"zeta":    {Query: "z"},
			"golang":  {Query: "title:go", Folder: "Code", Tags: []string{"go", " ", "review"}},
			"alpha":   {Query: "a"},
			"broken":  {Tags: []string{"missing"}},
			"nofold":  {Folder: "Nowhere"},
			"starred": {Favorite: store.Bool(true), Template: store.Bool(false)},
		},
		ViewOrder: []string{"golang", "starred", "ghost", "golang"},
	}
	return NewViewManager(res, ws)
}

func TestNamesOrder(t *testing.T) {
	vm := newManager()
	want := []string{"all", "favorites", "templates", "golang", "starred", "alpha", "broken", "nofold", "zeta"}
	if got := vm.Names(); !slices.Equal(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
}

func TestNamesWithoutWorkspace(t *testing.T) {
	vm := NewViewManager(fakeResolver{}, nil)
	if got := vm.Names(); !slices.Equal(got, []string{"all", "favorites", "templates"}) {
		t.Fatalf("Names() = %v", got)
	}
}

func TestResolveBuiltins(t *testing.T) {
	vm := newManager()
	ctx := context.Background()

	all, err := vm.Resolve(ctx, All)
	if err != nil {
		t.Fatal(err)
	}
	if !all.BuiltIn || all.Query != "" || all.Filter.IsFavorite != nil || all.Filter.FolderID != nil {
		t.Fatalf("unexpected all view %+v", all)
	}

	fav, err := vm.Resolve(ctx, Favorites)
	if err != nil {
		t.Fatal(err)
	}
	if fav.Filter.IsFavorite == nil || !*fav.Filter.IsFavorite {
		t.Fatalf("expected favorites filter, got %+v", fav.Filter)
	}

	tpl, err := vm.Resolve(ctx, Templates)
	if err != nil {
		t.Fatal(err)
	}
	if tpl.Filter.IsTemplate == nil || !*tpl.Filter.IsTemplate {
		t.Fatalf("expected templates filter, got %+v", tpl.Filter)
	}
}

func TestResolveSavedView(t *testing.T) {
	vm := newManager()

	v, err := vm.Resolve(context.Background(), "golang")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v.BuiltIn {
		t.Fatal("saved view reported as built-in")
	}
	if v.Query != "title:go" {
		t.Fatalf("unexpected query %q", v.Query)
	}
	if v.Filter.FolderID == nil || *v.Filter.FolderID != 4 {
		t.Fatalf("unexpected folder filter %v", v.Filter.FolderID)
	}
	if !slices.Equal(v.Filter.TagIDs, []int64{7, 9}) {
		t.Fatalf("unexpected tag ids %v", v.Filter.TagIDs)
	}

	starred, err := vm.Resolve(context.Background(), "starred")
	if err != nil {
		t.Fatal(err)
	}
	if !*starred.Filter.IsFavorite || *starred.Filter.IsTemplate {
		t.Fatalf("unexpected starred filter %+v", starred.Filter)
	}
}

func TestResolveErrors(t *testing.T) {
	vm := newManager()
	ctx := context.Background()

	if _, err := vm.Resolve(ctx, "broken"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing tag, got %v", err)
	}
	if _, err := vm.Resolve(ctx, "nofold"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing folder, got %v", err)
	}

	_, err := vm.Resolve(ctx, "unknown")
	if err == nil || !strings.Contains(err.Error(), "Available views are: all, favorites") {
		t.Fatalf("expected invalid view error listing views, got %v", err)
	}
}

func TestGetTitleForView(t *testing.T) {
	vm := NewViewManager(fakeResolver{}, nil)
	title := vm.GetTitleForView(Favorites)
	for _, want := range []string{"Views:", "[1] all", "[2] favorites", "[3] templates"} {
		if !strings.Contains(title, want) {
			t.Fatalf("expected %q in %q", want, title)
		}
	}
}
