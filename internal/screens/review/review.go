// Package review shows every answer once the last question is answered and
// lets the user edit answers, step back, or finalize.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/screens/final"
	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// ReviewScreen lists the answers for a last look before finalizing.
type ReviewScreen struct {
	engine   *sess.Engine
	history  store.HistoryRepo
	selected int
	editing  bool
	input    components.TextInput
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates the review screen. history is handed on to the summary.
func New(engine *sess.Engine, history store.HistoryRepo) *ReviewScreen {
	return &ReviewScreen{engine: engine, history: history}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Edit"},
	}
	if s.engine.CanRetreat() {
		hints = append(hints, layout.KeyHint{Key: "B", Description: "Back"})
	}
	return append(hints,
		layout.KeyHint{Key: "F", Description: "Finish"},
		layout.KeyHint{Key: "Esc", Description: "Questions"},
	)
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.editing {
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.editing {
		return s.handleEditKey(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.engine.Answers())-1 {
			s.selected++
		}
	case "enter", "e":
		answers := s.engine.Answers()
		if s.selected < len(answers) {
			s.editing = true
			s.input = components.NewTextInput("Type your answer...",
				s.engine.Config().MaxAnswerLength, 60)
			s.input.SetValue(answers[s.selected].Answer)
			return s, s.input.Init()
		}
	case "b":
		return s, s.back()
	case "f":
		return s, s.finish()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ReviewScreen) handleEditKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		err := s.engine.EditAnswer(context.Background(), s.selected, s.input.Value())
		var verr *sess.ValidationError
		switch {
		case errors.As(err, &verr) && verr.Message == sess.MessageEmpty:
			return s, screen.Toast("Please enter an answer", components.ToastWarning)
		case err != nil:
			return s, screen.Toast("Could not save: "+err.Error(), components.ToastError)
		}
		s.editing = false
		return s, screen.Toast("✓ Answer updated", components.ToastSuccess)
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// back returns to the last question with its answer ready for editing.
func (s *ReviewScreen) back() tea.Cmd {
	text, err := s.engine.Retreat(context.Background())
	if errors.Is(err, sess.ErrNoOp) {
		return nil
	}
	if err != nil {
		return screen.Toast("Could not save: "+err.Error(), components.ToastError)
	}
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return screen.PrefillAnswerMsg{Text: text} },
		screen.Toast("← Back to questions", components.ToastInfo),
	)
}

func (s *ReviewScreen) finish() tea.Cmd {
	if _, err := s.engine.Finalize(context.Background()); err != nil {
		return nil
	}
	scr := final.New(s.engine, s.history)
	return tea.Batch(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} },
		screen.Toast("✓ Moving to final summary", components.ToastSuccess),
	)
}

func (s *ReviewScreen) View(width, height int) string {
	answers := s.engine.Answers()
	if len(answers) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No answers to review. Press F to finish.")
	}

	if s.selected >= len(answers) {
		s.selected = len(answers) - 1
	}

	textWidth := min(width-8, 76)
	blocks := make([]string, len(answers))
	for i, a := range answers {
		blocks[i] = s.renderAnswer(i, a, textWidth)
	}

	// Show a window of answers around the selection.
	start, end := window(blocks, s.selected, height-2)

	var b strings.Builder
	b.WriteString("\n")
	for _, block := range blocks[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *ReviewScreen) renderAnswer(i int, a sess.Answer, width int) string {
	label := fmt.Sprintf("%d. [%s]", i+1, sess.HumanizeKey(a.Level))
	if a.Dimension != "" {
		label += " " + sess.HumanizeKey(a.Dimension)
	}

	qStyle := theme.Unselected
	prefix := "  "
	if i == s.selected {
		qStyle = theme.Selected
		prefix = "▸ "
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(prefix + label))
	b.WriteString("\n")
	b.WriteString(layout.Wrap(qStyle, "  "+a.Question, width))
	b.WriteString("\n")
	if s.editing && i == s.selected {
		b.WriteString("  " + s.input.View())
	} else {
		b.WriteString(layout.Wrap(theme.Hint, "  → "+a.Answer, width))
	}
	b.WriteString("\n")
	return b.String()
}

// window returns the range of blocks to draw so that selected is visible
// and the total height stays within height lines where possible.
func window(blocks []string, selected, height int) (int, int) {
	start, end := selected, selected+1
	used := lipgloss.Height(blocks[selected])
	for {
		grew := false
		if end < len(blocks) && used+lipgloss.Height(blocks[end]) <= height {
			used += lipgloss.Height(blocks[end])
			end++
			grew = true
		}
		if start > 0 && used+lipgloss.Height(blocks[start-1]) <= height {
			start--
			used += lipgloss.Height(blocks[start])
			grew = true
		}
		if !grew {
			return start, end
		}
	}
}
