package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// Button is a styled button with a shortcut key.
type Button struct {
	Label   string
	Key     string
	OnPress func() tea.Cmd
}

// View renders the button, highlighted when active.
func (b Button) View(active bool) string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow is a horizontal group of buttons navigated with left/right.
type ButtonRow struct {
	Buttons  []Button
	Selected int
}

// NewButtonRow creates a row with the first button selected.
func NewButtonRow(buttons ...Button) ButtonRow {
	return ButtonRow{Buttons: buttons}
}

// Update handles navigation, enter, and shortcut keys.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch key := kmsg.String(); key {
	case "left", "shift+tab":
		if r.Selected > 0 {
			r.Selected--
		}
	case "right", "tab":
		if r.Selected < len(r.Buttons)-1 {
			r.Selected++
		}
	case "enter":
		return r, r.press(r.Selected)
	default:
		for i, b := range r.Buttons {
			if b.Key != "" && b.Key == key {
				r.Selected = i
				return r, r.press(i)
			}
		}
	}
	return r, nil
}

func (r ButtonRow) press(i int) tea.Cmd {
	if i < 0 || i >= len(r.Buttons) || r.Buttons[i].OnPress == nil {
		return nil
	}
	return r.Buttons[i].OnPress()
}

// View renders the buttons side by side.
func (r ButtonRow) View() string {
	views := make([]string, 0, len(r.Buttons)*2)
	for i, b := range r.Buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View(i == r.Selected))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
