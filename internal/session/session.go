// Package session implements the wizard's traversal engine: the cursor over
// the flattened questions, the answers given so far, bounded undo of
// retreats, review and finalization. Every change is persisted before it is
// applied in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/bizwiz/internal/prompts"
	"github.com/abhisek/bizwiz/internal/questions"
	"github.com/abhisek/bizwiz/internal/store"
)

// Options configures an Engine.
type Options struct {
	// Questions is the flattened catalog in traversal order.
	Questions []questions.Record

	// Resolver supplies prompts. Nil means every prompt is prompts.NotFound.
	Resolver *prompts.Resolver

	// States persists the in-progress session. Required.
	States store.StateRepo

	// History receives an entry per finalized session. Optional.
	History store.HistoryRepo

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// Config nil means DefaultConfig(). Non-positive numbers in a supplied
	// Config fall back to their defaults.
	Config *Config
}

// Engine owns the wizard state. It is not safe for concurrent use.
type Engine struct {
	flat     []questions.Record
	resolver *prompts.Resolver
	states   store.StateRepo
	history  store.HistoryRepo
	logger   *zap.Logger
	now      func() time.Time
	cfg      Config

	cursor      int
	answers     []Answer
	undo        *UndoHistory
	startedAt   time.Time
	reviewShown bool
	phase       Phase
	final       *FinalStats
}

// New creates an Engine and restores any saved session. A saved session that
// cannot be read or does not fit the catalog is ignored.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.States == nil {
		return nil, errors.New("session: state repository is required")
	}

	cfg := DefaultConfig()
	if opts.Config != nil {
		cfg = opts.Config.normalize()
	}

	e := &Engine{
		flat:     opts.Questions,
		resolver: opts.Resolver,
		states:   opts.States,
		history:  opts.History,
		logger:   opts.Logger,
		now:      opts.Now,
		cfg:      cfg,
		undo:     NewUndoHistory(cfg.UndoCapacity),
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	e.startedAt = e.now()

	e.restore(ctx)
	e.syncPhase()
	return e, nil
}

func (e *Engine) restore(ctx context.Context) {
	data, err := e.states.Load(ctx)
	if err != nil {
		e.logger.Warn("ignoring unreadable saved session", zap.Error(err))
		return
	}
	if data == nil {
		return
	}

	st := stateFromData(*data)
	switch {
	case !compatibleVersion(st.Version):
		e.logger.Warn("ignoring saved session from another version",
			zap.String("version", st.Version), zap.String("want", StateVersion))
		return
	case st.Cursor < 0 || st.Cursor > len(e.flat) || len(st.Answers) != st.Cursor:
		e.logger.Warn("ignoring saved session that does not fit the catalog",
			zap.Int("cursor", st.Cursor),
			zap.Int("answers", len(st.Answers)),
			zap.Int("questions", len(e.flat)))
		return
	}

	e.cursor = st.Cursor
	e.answers = st.Answers
	e.logger.Info("restored saved session", zap.Int("cursor", e.cursor))
}

// syncPhase derives the phase from the cursor after restore, undo or restart.
func (e *Engine) syncPhase() {
	if e.cursor < len(e.flat) {
		e.phase = PhaseActive
		return
	}
	e.phase = PhaseReview
	e.reviewShown = true
}

// commit persists cursor and answers, then applies them.
func (e *Engine) commit(ctx context.Context, op string, cursor int, answers []Answer) error {
	st := State{Version: StateVersion, Cursor: cursor, Answers: answers}
	if err := e.states.Save(ctx, st.toData()); err != nil {
		e.logger.Error("persist failed", zap.String("op", op), zap.Error(err))
		return &PersistenceError{Op: op, Err: err}
	}
	e.cursor = cursor
	e.answers = answers
	return nil
}

func (e *Engine) validateText(field, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{Field: field, Message: MessageEmpty}
	}
	if n := utf8.RuneCountInString(text); n > e.cfg.MaxAnswerLength {
		return "", &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("is %d characters, limit is %d", n, e.cfg.MaxAnswerLength),
		}
	}
	return text, nil
}

// Advance records text as the answer to the current question and moves to
// the next one.
func (e *Engine) Advance(ctx context.Context, text string) error {
	if e.phase != PhaseActive || e.cursor >= len(e.flat) {
		return ErrNoOp
	}
	text, err := e.validateText("answer", text)
	if err != nil {
		return err
	}

	q := e.flat[e.cursor]
	next := append(cloneAnswers(e.answers), Answer{
		Level:     q.Level,
		Dimension: q.Dimension,
		Question:  q.Question,
		Answer:    text,
	})
	if err := e.commit(ctx, "advance", e.cursor+1, next); err != nil {
		return err
	}
	e.logger.Debug("advanced", zap.Int("cursor", e.cursor), zap.String("level", q.Level))

	if e.cursor == len(e.flat) {
		e.reachEnd(ctx)
	}
	return nil
}

// reachEnd enters review the first time the end is reached and finalizes
// on later arrivals.
func (e *Engine) reachEnd(ctx context.Context) {
	if !e.reviewShown {
		e.reviewShown = true
		e.phase = PhaseReview
		return
	}
	e.phase = PhaseReview
	e.finalize(ctx)
}

// Retreat steps back one question, removing its answer. It returns the
// removed answer text so the caller can offer it for editing.
func (e *Engine) Retreat(ctx context.Context) (string, error) {
	if e.phase == PhaseFinal || e.cursor == 0 {
		return "", ErrNoOp
	}

	snap := Snapshot{Cursor: e.cursor, Answers: e.answers}
	removed := e.answers[e.cursor-1].Answer
	if err := e.commit(ctx, "retreat", e.cursor-1, cloneAnswers(e.answers[:e.cursor-1])); err != nil {
		return "", err
	}
	if e.cfg.UndoEnabled {
		e.undo.Push(snap)
	}
	e.phase = PhaseActive
	e.logger.Debug("retreated", zap.Int("cursor", e.cursor), zap.Int("undo_depth", e.undo.Len()))
	return removed, nil
}

// Undo reverses the most recent retreat.
func (e *Engine) Undo(ctx context.Context) error {
	if e.phase == PhaseFinal || !e.cfg.UndoEnabled {
		return ErrNoOp
	}
	snap, ok := e.undo.Peek()
	if !ok {
		return ErrNoOp
	}
	if err := e.commit(ctx, "undo", snap.Cursor, snap.Answers); err != nil {
		return err
	}
	e.undo.Pop()
	e.logger.Debug("undid retreat", zap.Int("cursor", e.cursor))

	if e.cursor == len(e.flat) {
		e.reachEnd(ctx)
	} else {
		e.phase = PhaseActive
	}
	return nil
}

// EditAnswer replaces the text of answer index. The cursor and undo history
// are untouched.
func (e *Engine) EditAnswer(ctx context.Context, index int, text string) error {
	if e.phase == PhaseFinal {
		return ErrNoOp
	}
	if index < 0 || index >= len(e.answers) {
		return &ValidationError{
			Field:   "index",
			Message: fmt.Sprintf("%d out of range [0, %d)", index, len(e.answers)),
		}
	}
	text, err := e.validateText("answer", text)
	if err != nil {
		return err
	}

	next := cloneAnswers(e.answers)
	next[index].Answer = text
	if err := e.commit(ctx, "edit", e.cursor, next); err != nil {
		return err
	}
	e.logger.Debug("edited answer", zap.Int("index", index))
	return nil
}

// Finalize ends the review and records the session in the history log.
func (e *Engine) Finalize(ctx context.Context) (*FinalStats, error) {
	if e.phase != PhaseReview {
		return nil, ErrNoOp
	}
	return e.finalize(ctx), nil
}

func (e *Engine) finalize(ctx context.Context) *FinalStats {
	now := e.now()
	stats := buildFinalStats(e.answers, e.startedAt, now)
	e.final = stats
	e.phase = PhaseFinal

	if e.history != nil {
		entry := store.HistoryEntry{
			ID:             uuid.New().String(),
			Timestamp:      now.UTC(),
			AnswerCount:    stats.AnswerCount,
			ElapsedMinutes: stats.ElapsedMinutes,
		}
		if err := e.history.Append(ctx, entry); err != nil {
			e.logger.Warn("history append failed", zap.Error(err))
		}
	}

	e.logger.Info("session finalized",
		zap.Int("answers", stats.AnswerCount),
		zap.Int("minutes", stats.ElapsedMinutes))
	return stats
}

// Restart discards the session and starts over. The in-memory reset happens
// even when clearing the saved state fails.
func (e *Engine) Restart(ctx context.Context) error {
	err := e.states.Clear(ctx)

	e.cursor = 0
	e.answers = nil
	e.undo.Clear()
	e.startedAt = e.now()
	e.reviewShown = false
	e.final = nil
	e.syncPhase()
	e.logger.Info("session restarted")

	if err != nil {
		e.logger.Error("clear saved session failed", zap.Error(err))
		return &PersistenceError{Op: "restart", Err: err}
	}
	return nil
}

// CurrentQuestion returns the question at the cursor while answering.
// Hint and difficulty are blank when their display is disabled.
func (e *Engine) CurrentQuestion() (questions.Record, bool) {
	if e.phase != PhaseActive || e.cursor >= len(e.flat) {
		return questions.Record{}, false
	}
	q := e.flat[e.cursor]
	if !e.cfg.HintsEnabled {
		q.Hint = ""
	}
	if !e.cfg.DifficultyEnabled {
		q.Difficulty = questions.DifficultyNone
	}
	return q, true
}

// Prompt returns the suggestions for the current question, or "" when no
// question is current.
func (e *Engine) Prompt() string {
	q, ok := e.CurrentQuestion()
	if !ok {
		return ""
	}
	if e.resolver == nil {
		return prompts.NotFound
	}
	return e.resolver.Resolve(q.Level, q.Dimension, q.Question)
}

// State returns a copy of the traversal state.
func (e *Engine) State() State {
	return State{Version: StateVersion, Cursor: e.cursor, Answers: e.Answers()}
}

// Cursor returns the index of the current question.
func (e *Engine) Cursor() int { return e.cursor }

// Total returns the number of questions.
func (e *Engine) Total() int { return len(e.flat) }

// Questions returns the flattened questions. Callers must not modify it.
func (e *Engine) Questions() []questions.Record { return e.flat }

// Answers returns a copy of the answers given so far.
func (e *Engine) Answers() []Answer { return cloneAnswers(e.answers) }

// Phase returns the lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// ReviewShown reports whether the review phase has been entered since the
// last restart.
func (e *Engine) ReviewShown() bool { return e.reviewShown }

// Final returns the statistics of the finalized session, or nil.
func (e *Engine) Final() *FinalStats { return e.final }

// Config returns the effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// CanRetreat reports whether Retreat would do anything.
func (e *Engine) CanRetreat() bool { return e.phase != PhaseFinal && e.cursor > 0 }

// CanUndo reports whether Undo would do anything.
func (e *Engine) CanUndo() bool {
	return e.phase != PhaseFinal && e.cfg.UndoEnabled && e.undo.Len() > 0
}

// UndoDepth returns the number of retreats that can be undone.
func (e *Engine) UndoDepth() int { return e.undo.Len() }

// Elapsed returns the time since the session started.
func (e *Engine) Elapsed() time.Duration { return e.now().Sub(e.startedAt) }

// Progress returns the answered fraction in [0, 1].
func (e *Engine) Progress() float64 {
	if len(e.flat) == 0 {
		return 1
	}
	return float64(e.cursor) / float64(len(e.flat))
}

// EstimatedRemainingMinutes estimates the time left for unanswered questions,
// rounded up to whole minutes.
func (e *Engine) EstimatedRemainingMinutes() int {
	remaining := len(e.flat) - e.cursor
	if remaining <= 0 {
		return 0
	}
	secs := float64(remaining * e.cfg.SecondsPerQuestion)
	return int(math.Ceil(secs / 60))
}
