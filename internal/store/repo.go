package store

import (
	"context"
	"time"
)

// Record keys. Changing them orphans existing saved data.
const (
	KeyProgress = "business_builder_progress_v1"
	KeyTheme    = "business_builder_theme"
	KeyHistory  = "business_builder_history"
)

// MaxHistory is the number of history entries kept, most recent first.
const MaxHistory = 10

// Themes accepted by PrefRepo.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// AnswerData is one persisted answer.
type AnswerData struct {
	Level     string `json:"level"`
	Dimension string `json:"dimension,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// SessionStateData is the persisted traversal position. len(Answers) equals
// Cursor for any state written by the engine.
type SessionStateData struct {
	Version string       `json:"version,omitempty"`
	Cursor  int          `json:"cursor"`
	Answers []AnswerData `json:"answers"`
}

// StateRepo persists the single in-progress session.
type StateRepo interface {
	// Load returns the saved state, or nil if none exists. A record that
	// cannot be decoded is reported as an error.
	Load(ctx context.Context) (*SessionStateData, error)

	// Save replaces the saved state.
	Save(ctx context.Context, data SessionStateData) error

	// Clear removes the saved state. Clearing a missing record is not an error.
	Clear(ctx context.Context) error
}

// HistoryEntry records one finished session.
type HistoryEntry struct {
	ID             string    `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	AnswerCount    int       `json:"answers"`
	ElapsedMinutes int       `json:"time"`
}

// HistoryRepo manages the completed-session log.
type HistoryRepo interface {
	// Append adds an entry at the front and drops entries beyond MaxHistory.
	Append(ctx context.Context, entry HistoryEntry) error

	// List returns entries most recent first.
	List(ctx context.Context) ([]HistoryEntry, error)

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// PrefRepo stores user preferences.
type PrefRepo interface {
	// Theme returns the saved theme, ThemeLight when none is saved.
	Theme(ctx context.Context) (string, error)

	// SetTheme saves the theme. Only ThemeLight and ThemeDark are accepted.
	SetTheme(ctx context.Context, theme string) error
}
