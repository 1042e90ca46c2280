package session

import (
	"golang.org/x/mod/semver"

	"github.com/abhisek/bizwiz/internal/store"
)

// StateVersion is written into every persisted state. Saved states whose
// major version differs are ignored on restore.
const StateVersion = "v1.0.0"

// Defaults for Config.
const (
	DefaultUndoCapacity       = 10
	DefaultMaxAnswerLength    = 500
	DefaultSecondsPerQuestion = 45
)

// Phase is the engine's position in the wizard lifecycle.
type Phase int

const (
	PhaseActive Phase = iota // Answering questions
	PhaseReview              // All questions answered, answers editable
	PhaseFinal               // Finalized, only Restart is accepted
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseReview:
		return "review"
	case PhaseFinal:
		return "final"
	}
	return "unknown"
}

// Answer is the text submitted for one question.
type Answer struct {
	Level     string
	Dimension string
	Question  string
	Answer    string
}

// State is the traversal position: len(Answers) == Cursor.
type State struct {
	Version string
	Cursor  int
	Answers []Answer
}

func (s State) toData() store.SessionStateData {
	return store.SessionStateData{
		Version: s.Version,
		Cursor:  s.Cursor,
		Answers: answersToData(s.Answers),
	}
}

func stateFromData(d store.SessionStateData) State {
	return State{
		Version: d.Version,
		Cursor:  d.Cursor,
		Answers: answersFromData(d.Answers),
	}
}

// Config tunes the engine. Use DefaultConfig and override fields.
type Config struct {
	UndoEnabled        bool
	HintsEnabled       bool
	DifficultyEnabled  bool
	UndoCapacity       int
	MaxAnswerLength    int // in runes
	SecondsPerQuestion int
}

// DefaultConfig returns a Config with every feature enabled.
func DefaultConfig() Config {
	return Config{
		UndoEnabled:        true,
		HintsEnabled:       true,
		DifficultyEnabled:  true,
		UndoCapacity:       DefaultUndoCapacity,
		MaxAnswerLength:    DefaultMaxAnswerLength,
		SecondsPerQuestion: DefaultSecondsPerQuestion,
	}
}

// normalize fills non-positive numeric fields with defaults.
func (c Config) normalize() Config {
	if c.UndoCapacity <= 0 {
		c.UndoCapacity = DefaultUndoCapacity
	}
	if c.MaxAnswerLength <= 0 {
		c.MaxAnswerLength = DefaultMaxAnswerLength
	}
	if c.SecondsPerQuestion <= 0 {
		c.SecondsPerQuestion = DefaultSecondsPerQuestion
	}
	return c
}

// compatibleVersion reports whether a saved state written with version v can
// be restored. Unversioned states predate the field and are accepted.
func compatibleVersion(v string) bool {
	if v == "" {
		return true
	}
	if !semver.IsValid(v) {
		return false
	}
	return semver.Major(v) == semver.Major(StateVersion)
}

func cloneAnswers(answers []Answer) []Answer {
	out := make([]Answer, len(answers))
	copy(out, answers)
	return out
}

func answersToData(answers []Answer) []store.AnswerData {
	out := make([]store.AnswerData, len(answers))
	for i, a := range answers {
		out[i] = store.AnswerData{
			Level:     a.Level,
			Dimension: a.Dimension,
			Question:  a.Question,
			Answer:    a.Answer,
		}
	}
	return out
}

func answersFromData(data []store.AnswerData) []Answer {
	out := make([]Answer, len(data))
	for i, d := range data {
		out[i] = Answer{
			Level:     d.Level,
			Dimension: d.Dimension,
			Question:  d.Question,
			Answer:    d.Answer,
		}
	}
	return out
}
