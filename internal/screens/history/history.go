package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/layout"
	"github.com/abhisek/bizwiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

// HistoryScreen lists finished sessions, most recent first.
type HistoryScreen struct {
	repo     store.HistoryRepo
	entries  []store.HistoryEntry
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.HistoryRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := s.repo.List(context.Background())
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No completed sessions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.entries {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(FormatEntry(prefix, e))))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatEntry renders one history line.
func FormatEntry(prefix string, e store.HistoryEntry) string {
	answers := "answers"
	if e.AnswerCount == 1 {
		answers = "answer"
	}
	return fmt.Sprintf("%s%s  %d %s  %d min",
		prefix, e.Timestamp.Local().Format("Jan 02, 2006 15:04"), e.AnswerCount, answers, e.ElapsedMinutes)
}
