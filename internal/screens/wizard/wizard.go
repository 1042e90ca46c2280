package wizard

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/screens/final"
	"github.com/abhisek/bizwiz/internal/screens/history"
	"github.com/abhisek/bizwiz/internal/screens/review"
	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
)

// inputWidth is the visible width of the answer field.
const inputWidth = 60

// WizardScreen walks the user through the questions one at a time.
type WizardScreen struct {
	engine  *sess.Engine
	history store.HistoryRepo
	mode    mode
	buttons components.ButtonRow
	input   components.TextInput
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)
var _ screen.StatusProvider = (*WizardScreen)(nil)

// New creates the question screen over engine. history may be nil, which
// hides the history shortcut.
func New(engine *sess.Engine, history store.HistoryRepo) *WizardScreen {
	s := &WizardScreen{engine: engine, history: history}
	s.buttons = components.NewButtonRow(
		components.Button{Label: "I have an answer", Key: "y", OnPress: s.pressAnswer},
		components.Button{Label: "Show me prompts", Key: "n", OnPress: s.pressPrompt},
	)
	s.input = s.newInput("")
	return s
}

// Init sends a restored session that already reached the end straight to
// the review.
func (s *WizardScreen) Init() tea.Cmd {
	if s.engine.Phase() == sess.PhaseReview {
		return s.showReview()
	}
	return nil
}

func (s *WizardScreen) Title() string {
	return "Questions"
}

// Status shows the progress through the current level.
func (s *WizardScreen) Status() string {
	q, ok := s.engine.CurrentQuestion()
	if !ok {
		return fmt.Sprintf("%d/%d answered", len(s.engine.Answers()), s.engine.Total())
	}
	lp, _ := s.engine.LevelProgressFor(q.Level)
	return fmt.Sprintf("%s (%d/%d)", sess.HumanizeKey(q.Level), lp.Answered, lp.Total)
}

func (s *WizardScreen) KeyHints() []layout.KeyHint {
	if s.engine.Phase() != sess.PhaseActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	}
	if s.mode == modeInput {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}

	hints := []layout.KeyHint{
		{Key: "Y", Description: "Answer"},
		{Key: "N", Description: "Prompts"},
	}
	if s.engine.CanRetreat() {
		hints = append(hints, layout.KeyHint{Key: "B", Description: "Back"})
	}
	if s.engine.CanUndo() {
		hints = append(hints, layout.KeyHint{Key: "U", Description: "Undo"})
	}
	hints = append(hints, layout.KeyHint{Key: "T", Description: "Theme"})
	if s.history != nil {
		hints = append(hints, layout.KeyHint{Key: "H", Description: "History"})
	}
	return hints
}

func (s *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.PrefillAnswerMsg:
		return s, s.openInput(msg.Text)

	case screen.RestartedMsg:
		s.mode = modeChoose
		s.buttons.Selected = 0
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *WizardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.engine.Phase() != sess.PhaseActive {
		if key == "enter" {
			return s, s.showEnd()
		}
		return s, nil
	}

	if s.mode == modeInput {
		switch key {
		case "enter":
			return s, s.submit()
		case "esc":
			s.mode = modeChoose
			return s, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "b":
		return s, s.back()
	case "u":
		return s, s.undo()
	case "t":
		return s, func() tea.Msg { return screen.ToggleThemeMsg{} }
	case "h":
		if s.history != nil {
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: history.New(s.history)} }
		}
		return s, nil
	case "esc":
		if s.mode == modePrompt {
			s.mode = modeChoose
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *WizardScreen) pressAnswer() tea.Cmd {
	return s.openInput("")
}

func (s *WizardScreen) pressPrompt() tea.Cmd {
	s.mode = modePrompt
	return nil
}

func (s *WizardScreen) newInput(value string) components.TextInput {
	in := components.NewTextInput("Type your answer...", s.engine.Config().MaxAnswerLength, inputWidth)
	if value != "" {
		in.SetValue(value)
	}
	return in
}

func (s *WizardScreen) openInput(value string) tea.Cmd {
	s.mode = modeInput
	s.input = s.newInput(value)
	return s.input.Init()
}

func (s *WizardScreen) submit() tea.Cmd {
	err := s.engine.Advance(context.Background(), s.input.Value())
	if err != nil {
		return errorToast(err, "")
	}

	s.mode = modeChoose
	s.buttons.Selected = 0
	switch s.engine.Phase() {
	case sess.PhaseReview, sess.PhaseFinal:
		return tea.Batch(
			screen.Toast("✓ Moving to final summary", components.ToastSuccess),
			s.showEnd(),
		)
	}
	return screen.Toast("✓ Answer saved", components.ToastSuccess)
}

func (s *WizardScreen) back() tea.Cmd {
	text, err := s.engine.Retreat(context.Background())
	if err != nil {
		return errorToast(err, "Already at the first question")
	}
	return tea.Batch(
		s.openInput(text),
		screen.Toast("← Previous question", components.ToastInfo),
	)
}

func (s *WizardScreen) undo() tea.Cmd {
	if err := s.engine.Undo(context.Background()); err != nil {
		return errorToast(err, "Nothing to undo")
	}
	s.mode = modeChoose
	cmd := screen.Toast("↶ Undo successful", components.ToastInfo)
	if s.engine.Phase() != sess.PhaseActive {
		return tea.Batch(cmd, s.showEnd())
	}
	return cmd
}

// showEnd opens the review, or the summary once the session is final.
func (s *WizardScreen) showEnd() tea.Cmd {
	if s.engine.Phase() == sess.PhaseFinal {
		scr := final.New(s.engine, s.history)
		return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}
	return s.showReview()
}

func (s *WizardScreen) showReview() tea.Cmd {
	scr := review.New(s.engine, s.history)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

// errorToast maps an engine error to a toast. ErrNoOp shows noop as info,
// or nothing when noop is empty.
func errorToast(err error, noop string) tea.Cmd {
	var verr *sess.ValidationError
	switch {
	case errors.Is(err, sess.ErrNoOp):
		if noop == "" {
			return nil
		}
		return screen.Toast(noop, components.ToastInfo)
	case errors.As(err, &verr) && verr.Message == sess.MessageEmpty:
		return screen.Toast("Please enter an answer", components.ToastWarning)
	case errors.As(err, &verr):
		return screen.Toast("Answer "+verr.Message, components.ToastWarning)
	}
	return screen.Toast("Could not save: "+err.Error(), components.ToastError)
}
