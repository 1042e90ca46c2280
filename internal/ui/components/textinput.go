package components

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a character counter.
type TextInput struct {
	Model     textinput.Model
	CharLimit int
}

// NewTextInput creates a focused text input limited to charLimit runes.
func NewTextInput(placeholder string, charLimit, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()

	return TextInput{
		Model:     ti,
		CharLimit: charLimit,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input followed by the counter.
func (t TextInput) View() string {
	return t.Model.View() + "  " + t.CounterView()
}

// CounterView renders "n/limit", highlighted near the limit.
func (t TextInput) CounterView() string {
	n := t.Len()
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.CharLimit > 0 && n >= t.CharLimit*9/10 {
		style = style.Foreground(theme.Warning)
	}
	if t.CharLimit <= 0 {
		return style.Render(fmt.Sprintf("%d", n))
	}
	return style.Render(fmt.Sprintf("%d/%d", n, t.CharLimit))
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Len returns the number of runes entered.
func (t TextInput) Len() int {
	return utf8.RuneCountInString(t.Model.Value())
}
