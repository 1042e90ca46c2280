package app

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/screens/wizard"
	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/components"
	"github.com/abhisek/bizwiz/internal/ui/layout"
	"github.com/abhisek/bizwiz/internal/ui/theme"
)

// Options wires the application.
type Options struct {
	// Engine drives the questions. Required.
	Engine *sess.Engine

	// History backs the history screen. Optional.
	History store.HistoryRepo

	// Prefs persists the theme. Optional.
	Prefs store.PrefRepo

	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	prefs  store.PrefRepo
	logger *zap.Logger
	toast  *components.Toast
	width  int
	height int
}

// newAppModel creates a new AppModel rooted at the question screen.
func newAppModel(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		router: router.New(wizard.New(opts.Engine, opts.History)),
		prefs:  opts.Prefs,
		logger: logger,
		toast:  &components.Toast{},
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.ToastMsg:
		return m, m.toast.Show(msg.Text, msg.Kind)

	case components.ToastExpiredMsg:
		m.toast.Update(msg)
		return m, nil

	case screen.ToggleThemeMsg:
		return m, m.toggleTheme()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toggleTheme switches the palette and saves the choice.
func (m AppModel) toggleTheme() tea.Cmd {
	mode := theme.Toggle()
	if m.prefs == nil {
		return nil
	}
	if err := m.prefs.SetTheme(context.Background(), string(mode)); err != nil {
		m.logger.Warn("save theme failed", zap.Error(err))
		return m.toast.Show("Theme could not be saved", components.ToastWarning)
	}
	m.logger.Debug("theme changed", zap.String("theme", string(mode)))
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render composes header, active screen, toast and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	status := themeIcon()
	if sp, ok := active.(screen.StatusProvider); ok {
		if s := sp.Status(); s != "" {
			status = s + "  " + status
		}
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(footerHints, m.width)

	toast := m.toast.View(m.width)
	contentHeight := layout.ContentHeight(m.height)
	if toast != "" {
		contentHeight--
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, toast, footer, m.width, m.height)
}

func themeIcon() string {
	if theme.Current() == theme.Dark {
		return "☾ dark"
	}
	return "☀ light"
}

// Run applies the saved theme and runs the program until the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil {
		return errors.New("app: engine is required")
	}
	if opts.Prefs != nil {
		saved, err := opts.Prefs.Theme(ctx)
		if err != nil && opts.Logger != nil {
			opts.Logger.Warn("load theme failed", zap.Error(err))
		}
		theme.Apply(theme.ParseMode(saved))
	}

	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
