package components

import (
	"image/color"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// ToastDuration is how long a toast stays visible.
const ToastDuration = 3 * time.Second

// ToastKind selects the toast color.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// ToastExpiredMsg dismisses the toast with the matching ID.
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient one-line notification. A newer toast replaces an older
// one; the older toast's expiry is ignored.
type Toast struct {
	Text    string
	Kind    ToastKind
	id      int
	visible bool
}

// Show displays text and returns the command that dismisses it after
// ToastDuration.
func (t *Toast) Show(text string, kind ToastKind) tea.Cmd {
	t.id++
	t.Text = text
	t.Kind = kind
	t.visible = true
	id := t.id
	return tea.Tick(ToastDuration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Update hides the toast when its expiry arrives.
func (t *Toast) Update(msg tea.Msg) {
	if m, ok := msg.(ToastExpiredMsg); ok && m.ID == t.id {
		t.visible = false
	}
}

// Visible reports whether the toast is showing.
func (t Toast) Visible() bool {
	return t.visible
}

// View renders the toast, or "" when hidden.
func (t Toast) View(width int) string {
	if !t.visible {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(t.color()).
		Bold(true).
		Render(t.Text)
}

func (t Toast) color() color.Color {
	switch t.Kind {
	case ToastSuccess:
		return theme.Success
	case ToastWarning:
		return theme.Warning
	case ToastError:
		return theme.Error
	}
	return theme.Secondary
}
