// Package final shows the summary of a finalized session.
package final

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/screens/history"
	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// FinalScreen displays the statistics and every answer of the session.
type FinalScreen struct {
	engine  *sess.Engine
	history store.HistoryRepo
	menu    components.Menu
	answers viewport.Model
}

var _ screen.Screen = (*FinalScreen)(nil)
var _ screen.KeyHintProvider = (*FinalScreen)(nil)

// New creates the summary screen. history may be nil, which disables the
// history item.
func New(engine *sess.Engine, history store.HistoryRepo) *FinalScreen {
	s := &FinalScreen{
		engine:  engine,
		history: history,
		answers: viewport.New(),
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start over", Key: "r", Action: s.restart},
		{Label: "History", Key: "h", Action: s.openHistory, Disabled: history == nil},
		{Label: "Quit", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	})
	s.answers.SetContent(sess.FormatSummary(engine.Answers()))
	return s
}

func (s *FinalScreen) Init() tea.Cmd {
	return nil
}

func (s *FinalScreen) Title() string {
	return "Summary"
}

func (s *FinalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Menu"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FinalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "pgup":
		s.answers.PageUp()
		return s, nil
	case "pgdown", "space":
		s.answers.PageDown()
		return s, nil
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *FinalScreen) restart() tea.Cmd {
	err := s.engine.Restart(context.Background())
	toast := screen.Toast("↻ Restarted", components.ToastSuccess)
	if err != nil {
		toast = screen.Toast("Restarted, but the saved session could not be cleared", components.ToastWarning)
	}
	return tea.Sequence(
		func() tea.Msg { return router.PopToRootMsg{} },
		func() tea.Msg { return screen.RestartedMsg{} },
		toast,
	)
}

func (s *FinalScreen) openHistory() tea.Cmd {
	scr := history.New(s.history)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *FinalScreen) View(width, height int) string {
	stats := s.engine.Final()
	if stats == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Session not finished yet.")
	}

	textWidth := min(width-8, 76)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var top strings.Builder
	top.WriteString("\n")
	top.WriteString(center(theme.Title.Render("🎉 Your business plan is ready!")))
	top.WriteString("\n\n")
	top.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Answers: %d        Time: %d min        Completed: %s",
			stats.AnswerCount, stats.ElapsedMinutes,
			stats.CompletedAt.Local().Format("Jan 02, 2006 15:04")))))
	top.WriteString("\n")
	top.WriteString(center(layout.RenderDivider(textWidth)))
	top.WriteString("\n")

	menu := center(s.menu.View())
	viewHeight := height - lipgloss.Height(top.String()) - lipgloss.Height(menu) - 2
	if viewHeight < 3 {
		viewHeight = 3
	}
	s.answers.SetWidth(textWidth)
	s.answers.SetHeight(viewHeight)

	return top.String() + center(s.answers.View()) + "\n\n" + menu
}
