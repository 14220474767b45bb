package state

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/promptorg/internal/store"
)

// StatusLine is the library summary shown in the browser footer.
type StatusLine struct {
	mu   sync.RWMutex
	line string
}

func (s *StatusLine) Set(line string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.line = line
	s.mu.Unlock()
}

func (s *StatusLine) Value() string {
	if s == nil {
		return ""
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.line
}

// StatsMsg notifies subscribers that the status line was refreshed.
type StatsMsg struct {
	Line string
	Err  error
}

// StatsSource is the part of the store the status line needs.
type StatsSource interface {
	Statistics(ctx context.Context) (store.Stats, error)
}

// StatsHeartbeatCmd reads the library statistics, updates the shared status
// line and returns a StatsMsg so the browser can rerender.
func (s *State) StatsHeartbeatCmd(ctx context.Context) tea.Cmd {
	if s == nil {
		return nil
	}
	return StatsCmd(ctx, s.Store, s.WorkspaceName, s.Status)
}

func StatsCmd(ctx context.Context, src StatsSource, workspace string, status *StatusLine) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			status.Set("")
			return StatsMsg{}
		}
		stats, err := src.Statistics(ctx)
		if err != nil {
			return StatsMsg{Err: err}
		}
		line := FormatStats(workspace, stats)
		status.Set(line)
		return StatsMsg{Line: line}
	}
}

func FormatStats(workspace string, stats store.Stats) string {
	parts := []string{}
	if workspace != "" {
		parts = append(parts, workspace)
	}
	parts = append(parts,
		fmt.Sprintf("%d prompts", stats.Prompts),
		fmt.Sprintf("%d ★", stats.Favorites),
		fmt.Sprintf("%d templates", stats.Templates),
	)
	if stats.Untagged > 0 {
		parts = append(parts, fmt.Sprintf("%d untagged", stats.Untagged))
	}
	return strings.Join(parts, " · ")
}
