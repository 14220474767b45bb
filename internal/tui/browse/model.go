// Package browse is the interactive prompt browser.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/promptorg/internal/render"
	"github.com/Paintersrp/promptorg/internal/search"
	"github.com/Paintersrp/promptorg/internal/state"
	"github.com/Paintersrp/promptorg/internal/store"
	"github.com/Paintersrp/promptorg/internal/views"
)

type focus int

const placeholder = `title:"code review" AND -tags:draft`

const (
	focusInput focus = iota
	focusList
)

// Searcher runs queries for the browser. A result has to match every query.
type Searcher interface {
	SearchAll(ctx context.Context, f store.Filter, queries ...string) ([]search.Result, error)
}

// ViewSource lists and resolves saved views.
type ViewSource interface {
	Names() []string
	Resolve(ctx context.Context, name string) (views.View, error)
	GetTitleForView(active string) string
}

// Deps are the collaborators of the browser. Copy and Preview default to the
// clipboard and the glamour renderer.
type Deps struct {
	Searcher  Searcher
	Views     ViewSource
	Stats     state.StatsSource
	Workspace string
	Copy      func(string) error
	Preview   func(render.Document, int) string
}

type resultsMsg struct {
	query   string
	results []search.Result
	err     error
}

type Model struct {
	ctx  context.Context
	deps Deps

	input    textinput.Model
	list     list.Model
	preview  viewport.Model
	keys     *keyMap
	status   *state.StatusLine
	focus    focus
	viewName string
	filter   store.Filter
	// viewQuery always applies on top of whatever is typed in the input.
	viewQuery string
	query     string
	results   []search.Result
	message   string
	width     int
	height    int

	// previewText is the rendered preview of the selected result.
	previewText string
}

func New(ctx context.Context, deps Deps, viewName, query string) (*Model, error) {
	if deps.Searcher == nil {
		return nil, fmt.Errorf("browse: searcher is required")
	}
	if deps.Preview == nil {
		deps.Preview = render.Preview
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.SetValue(query)
	ti.Focus()

	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(true)

	m := &Model{
		ctx:     ctx,
		deps:    deps,
		input:   ti,
		list:    l,
		preview: viewport.New(0, 0),
		keys:    newKeyMap(),
		status:  &state.StatusLine{},
		focus:   focusInput,
		query:   query,
	}

	if viewName == "" {
		viewName = views.All
	}
	if err := m.setView(viewName); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		m.resetQuery()
	}
	return m, nil
}

func (m *Model) setView(name string) error {
	if m.deps.Views == nil {
		m.viewName, m.filter, m.viewQuery = name, store.Filter{}, ""
		return nil
	}
	v, err := m.deps.Views.Resolve(m.ctx, name)
	if err != nil {
		return err
	}
	m.viewName, m.filter, m.viewQuery = name, v.Filter, v.Query
	return nil
}

// resetQuery shows the active view's own query in the input.
func (m *Model) resetQuery() {
	m.query = m.viewQuery
	m.input.SetValue(m.viewQuery)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd(m.query), m.statsCmd())
}

func (m Model) searchCmd(query string) tea.Cmd {
	ctx, searcher, filter := m.ctx, m.deps.Searcher, m.filter
	queries := search.ViewQueries(m.viewQuery, query)
	return func() tea.Msg {
		results, err := searcher.SearchAll(ctx, filter, queries...)
		return resultsMsg{query: query, results: results, err: err}
	}
}

func (m Model) statsCmd() tea.Cmd {
	if m.deps.Stats == nil {
		return nil
	}
	return state.StatsCmd(m.ctx, m.deps.Stats, m.deps.Workspace, m.status)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case resultsMsg:
		if msg.err != nil {
			m.message = errorStyle(fmt.Sprintf("Search failed: %v", msg.err))
			return m, nil
		}
		m.query = msg.query
		m.results = msg.results
		cmds = append(cmds, m.list.SetItems(toItems(msg.results)))
		m.list.Select(0)
		m.message = statusStyle(fmt.Sprintf("%d results", len(msg.results)))
		m.updatePreview()
		return m, tea.Batch(cmds...)

	case state.StatsMsg:
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.forceQuit), key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.toggleFocus):
			m.toggleFocus()
			return m, nil
		case m.focus == focusInput && key.Matches(msg, m.keys.search):
			return m, m.searchCmd(m.input.Value())
		case m.focus == focusList && key.Matches(msg, m.keys.copy):
			m.copySelected()
			return m, nil
		case m.focus == focusList && key.Matches(msg, m.keys.changeView):
			return m, m.cycleView()
		case key.Matches(msg, m.keys.refresh):
			return m, tea.Batch(m.searchCmd(m.query), m.statsCmd())
		}
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else {
		prev := m.list.Index()
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
		if m.list.Index() != prev {
			m.updatePreview()
		}
		m.preview, cmd = m.preview.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) copySelected() {
	r, ok := m.selected()
	if !ok {
		m.message = statusStyle("Nothing selected")
		return
	}
	if m.deps.Copy == nil {
		m.message = errorStyle("Clipboard is not configured")
		return
	}
	if err := m.deps.Copy(r.Content); err != nil {
		m.message = errorStyle(fmt.Sprintf("Error copying prompt: %v", err))
		return
	}
	m.message = statusStyle(fmt.Sprintf("Copied %q", r.Title))
}

func (m *Model) cycleView() tea.Cmd {
	if m.deps.Views == nil {
		return nil
	}
	names := m.deps.Views.Names()
	if len(names) == 0 {
		return nil
	}
	next := names[0]
	for i, name := range names {
		if name == m.viewName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.setView(next); err != nil {
		m.message = errorStyle(err.Error())
		return nil
	}
	m.resetQuery()
	return m.searchCmd(m.query)
}

func (m Model) selected() (search.Result, bool) {
	it, ok := m.list.SelectedItem().(item)
	if !ok {
		return search.Result{}, false
	}
	return it.result, true
}

func (m *Model) resize() {
	h, v := appStyle.GetFrameSize()
	width := m.width - h
	height := m.height - v - 6
	if height < 1 {
		height = 1
	}

	m.input.Width = width - 6
	listWidth := width / 2
	m.list.SetSize(listWidth, height)
	m.preview.Width = width - listWidth - 2
	m.preview.Height = height
	m.updatePreview()
}

func (m *Model) updatePreview() {
	r, ok := m.selected()
	if !ok {
		m.previewText = "No prompts match."
		m.preview.SetContent(m.previewText)
		return
	}
	width := m.preview.Width
	if width <= 0 {
		width = 80
	}
	m.previewText = m.deps.Preview(render.FromResult(r), width)
	m.preview.SetContent(m.previewText)
	m.preview.GotoTop()
}

func (m Model) View() string {
	header := m.viewName
	if m.deps.Views != nil {
		header = m.deps.Views.GetTitleForView(m.viewName)
	}

	style := inputStyle
	if m.focus == focusInput {
		style = focusedInputStyle
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listStyle.Render(m.list.View()),
		previewStyle.Render(m.preview.View()),
	)

	footer := []string{}
	if line := m.status.Value(); line != "" {
		footer = append(footer, statusStyle(line))
	}
	if m.message != "" {
		footer = append(footer, m.message)
	}

	var help []string
	for _, b := range m.keys.shortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		style.Render(m.input.View()),
		body,
		strings.Join(footer, "  "),
		helpStyle.Render(strings.Join(help, " • ")),
	))
}

// Run starts the browser full screen.
func Run(ctx context.Context, deps Deps, viewName, query string) error {
	m, err := New(ctx, deps, viewName, query)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
