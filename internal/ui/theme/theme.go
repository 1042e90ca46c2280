package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Mode names a palette.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Palette is a set of colors for one mode.
type Palette struct {
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
}

var palettes = map[Mode]Palette{
	Light: {
		Primary:   lipgloss.Color("#0066CC"), // Blue
		Secondary: lipgloss.Color("#0D9488"), // Teal
		Accent:    lipgloss.Color("#C2410C"), // Burnt orange
		Success:   lipgloss.Color("#15803D"),
		Warning:   lipgloss.Color("#B45309"),
		Error:     lipgloss.Color("#BE123C"),
		Text:      lipgloss.Color("#1E293B"),
		TextDim:   lipgloss.Color("#64748B"),
		Bg:        lipgloss.Color("#F8FAFC"),
		BgCard:    lipgloss.Color("#E2E8F0"),
		Border:    lipgloss.Color("#CBD5E1"),
	},
	Dark: {
		Primary:   lipgloss.Color("#60A5FA"),
		Secondary: lipgloss.Color("#14B8A6"),
		Accent:    lipgloss.Color("#F97316"),
		Success:   lipgloss.Color("#22C55E"),
		Warning:   lipgloss.Color("#FACC15"),
		Error:     lipgloss.Color("#F43F5E"),
		Text:      lipgloss.Color("#F8FAFC"),
		TextDim:   lipgloss.Color("#94A3B8"),
		Bg:        lipgloss.Color("#0F172A"),
		BgCard:    lipgloss.Color("#1E293B"),
		Border:    lipgloss.Color("#334155"),
	},
}

var current = Light

// Colors of the active palette. Set by Apply.
var (
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color
	Success   color.Color
	Warning   color.Color
	Error     color.Color
	Text      color.Color
	TextDim   color.Color
	Bg        color.Color
	BgCard    color.Color
	Border    color.Color
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

func init() {
	Apply(Light)
}

// ParseMode converts a stored preference to a Mode, defaulting to Light.
func ParseMode(s string) Mode {
	if Mode(s) == Dark {
		return Dark
	}
	return Light
}

// Current returns the active mode.
func Current() Mode {
	return current
}

// Toggle switches between light and dark and returns the new mode.
func Toggle() Mode {
	if current == Dark {
		Apply(Light)
	} else {
		Apply(Dark)
	}
	return current
}

// Apply activates the palette for mode. Unknown modes fall back to Light.
func Apply(mode Mode) {
	p, ok := palettes[mode]
	if !ok {
		mode = Light
		p = palettes[Light]
	}
	current = mode

	Primary = p.Primary
	Secondary = p.Secondary
	Accent = p.Accent
	Success = p.Success
	Warning = p.Warning
	Error = p.Error
	Text = p.Text
	TextDim = p.TextDim
	Bg = p.Bg
	BgCard = p.BgCard
	Border = p.Border

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(Bg).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}
