package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// string on the right of the header.
type StatusProvider interface {
	Status() string
}

// ToastMsg asks the app to show a toast.
type ToastMsg struct {
	Text string
	Kind components.ToastKind
}

// ToggleThemeMsg asks the app to switch and persist the theme.
type ToggleThemeMsg struct{}

// PrefillAnswerMsg is delivered to the question screen after a retreat made
// from another screen, carrying the removed answer for editing.
type PrefillAnswerMsg struct {
	Text string
}

// RestartedMsg is delivered to the question screen after the session was
// restarted from another screen.
type RestartedMsg struct{}

// Toast returns a command that emits a ToastMsg.
func Toast(text string, kind components.ToastKind) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Text: text, Kind: kind} }
}
