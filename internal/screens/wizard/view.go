package wizard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/prompts"
	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
	"github.com/abhisek/bizwiz/internal/ui/theme"
)

func (s *WizardScreen) View(width, height int) string {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		return s.renderEnd(width)
	}

	textWidth := min(width-8, 76)
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	var b strings.Builder
	b.WriteString("\n")

	if info := infoLine(q.Dimension, string(q.Difficulty)); info != "" {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Secondary).Render(info)))
		b.WriteString("\n")
		b.WriteString(center(layout.RenderDivider(textWidth)))
		b.WriteString("\n\n")
	}

	b.WriteString(center(layout.Wrap(theme.Title.Align(lipgloss.Center), q.Question, textWidth)))
	b.WriteString("\n\n")

	if q.Hint != "" {
		b.WriteString(center(layout.Wrap(theme.Hint.Align(lipgloss.Center), "💡 "+q.Hint, textWidth)))
		b.WriteString("\n\n")
	}

	switch s.mode {
	case modeInput:
		b.WriteString(center(s.input.View()))
		b.WriteString("\n\n")
	case modePrompt:
		b.WriteString(center(renderPrompt(s.engine.Prompt(), textWidth)))
		b.WriteString("\n\n")
		b.WriteString(center(s.buttons.View()))
		b.WriteString("\n\n")
	default:
		b.WriteString(center(theme.Body.Render("Do you already have an answer?")))
		b.WriteString("\n\n")
		b.WriteString(center(s.buttons.View()))
		b.WriteString("\n\n")
	}

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Question %d of %d • ⏱ ~%d min left",
			s.engine.Cursor()+1, s.engine.Total(), s.engine.EstimatedRemainingMinutes()))))
	b.WriteString("\n")
	b.WriteString(center(components.NewProgressBar("", s.engine.Progress(), true, textWidth).View()))

	return b.String()
}

func infoLine(dimension, difficulty string) string {
	var parts []string
	if dimension != "" {
		parts = append(parts, "Dimension: "+sess.HumanizeKey(dimension))
	}
	if difficulty != "" {
		parts = append(parts, difficulty)
	}
	return strings.Join(parts, " • ")
}

func renderPrompt(prompt string, width int) string {
	return theme.Card.Width(width).Render(
		theme.Subtitle.Render("Prompts to get you thinking") + "\n\n" +
			theme.Body.Render(prompts.Bulleted(prompt)))
}

func (s *WizardScreen) renderEnd(width int) string {
	msg := "All questions answered.\n\nPress Enter to review your answers."
	if s.engine.Phase() == sess.PhaseFinal {
		msg = "Session complete.\n\nPress Enter to see your summary."
	}
	if s.engine.Total() == 0 {
		msg = "The question catalog is empty.\n\nPress Enter to continue."
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n" + msg)
}
