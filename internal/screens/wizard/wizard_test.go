package wizard

import (
	"context"
	"reflect"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/bizwiz/internal/prompts"
	"github.com/abhisek/bizwiz/internal/questions"
	"github.com/abhisek/bizwiz/internal/router"
	"github.com/abhisek/bizwiz/internal/screen"
	"github.com/abhisek/bizwiz/internal/screens/final"
	"github.com/abhisek/bizwiz/internal/screens/review"
	sess "github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
	"github.com/abhisek/bizwiz/internal/ui/components"
)

var testQuestions = []questions.Record{
	{Level: "level_1", Dimension: "problem", Question: "What problem do you solve?", Hint: "Be specific"},
	{Level: "level_1", Dimension: "customer", Question: "Who is your customer?"},
	{Level: "level_2", Question: "How will you reach them?"},
}

func newTestScreen(t *testing.T) (*WizardScreen, *sess.Engine) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	eng, err := sess.New(context.Background(), sess.Options{
		Questions: testQuestions,
		States:    st.StateRepo(),
		History:   st.HistoryRepo(),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return New(eng, st.HistoryRepo()), eng
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain runs cmd and any batched or sequenced commands it expands to. Only
// use it where every command returns immediately.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeFor[tea.Cmd]() {
		var msgs []tea.Msg
		for i := 0; i < v.Len(); i++ {
			msgs = append(msgs, drain(v.Index(i).Interface().(tea.Cmd))...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func answer(t *testing.T, s *WizardScreen, text string) tea.Cmd {
	t.Helper()
	s.Update(keyPress('y'))
	if s.mode != modeInput {
		t.Fatalf("mode = %v after y, want input", s.mode)
	}
	s.input.SetValue(text)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestWizard_AnswerAdvances(t *testing.T) {
	s, eng := newTestScreen(t)

	msgs := drain(answer(t, s, "Late deliveries"))

	if eng.Cursor() != 1 {
		t.Fatalf("Cursor = %d, want 1", eng.Cursor())
	}
	if s.mode != modeChoose {
		t.Errorf("mode = %v after submit, want choose", s.mode)
	}
	if len(msgs) != 1 || msgs[0] != (screen.ToastMsg{Text: "✓ Answer saved", Kind: components.ToastSuccess}) {
		t.Errorf("msgs = %#v, want answer saved toast", msgs)
	}
}

func TestWizard_EmptyAnswerWarns(t *testing.T) {
	s, eng := newTestScreen(t)

	msgs := drain(answer(t, s, "   "))

	if eng.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", eng.Cursor())
	}
	if s.mode != modeInput {
		t.Error("input should stay open after a rejected answer")
	}
	want := screen.ToastMsg{Text: "Please enter an answer", Kind: components.ToastWarning}
	if len(msgs) != 1 || msgs[0] != want {
		t.Errorf("msgs = %#v, want %#v", msgs, want)
	}
}

func TestWizard_EscCancelsInput(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(keyPress('y'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.mode != modeChoose {
		t.Errorf("mode = %v after esc, want choose", s.mode)
	}
}

func TestWizard_PromptMode(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(keyPress('n'))
	if s.mode != modePrompt {
		t.Fatalf("mode = %v after n, want prompt", s.mode)
	}
	if !strings.Contains(s.View(100, 40), "Prompts to get you thinking") {
		t.Error("prompt mode should render the suggestions card")
	}
}

func TestRenderPrompt_LeadBullet(t *testing.T) {
	out := renderPrompt("Keep it short"+prompts.Separator+"Make it memorable", 60)
	if !strings.Contains(out, "• Keep it short") || !strings.Contains(out, "• Make it memorable") {
		t.Errorf("every prompt should be bulleted:\n%s", out)
	}

	out = renderPrompt(prompts.NotFound, 60)
	if strings.Contains(out, "•") {
		t.Errorf("missing prompt should not be bulleted:\n%s", out)
	}
}

func TestWizard_BackPrefillsPreviousAnswer(t *testing.T) {
	s, eng := newTestScreen(t)
	answer(t, s, "Late deliveries")

	s.Update(keyPress('b'))

	if eng.Cursor() != 0 {
		t.Fatalf("Cursor = %d after back, want 0", eng.Cursor())
	}
	if s.mode != modeInput || s.input.Value() != "Late deliveries" {
		t.Errorf("input = (%v, %q), want prefilled previous answer", s.mode, s.input.Value())
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	msgs := drain(func() tea.Cmd { _, c := s.Update(keyPress('u')); return c }())
	if eng.Cursor() != 1 {
		t.Errorf("Cursor = %d after undo, want 1", eng.Cursor())
	}
	if len(msgs) != 1 || msgs[0].(screen.ToastMsg).Text != "↶ Undo successful" {
		t.Errorf("msgs = %#v, want undo toast", msgs)
	}
}

func TestWizard_LastAnswerOpensReview(t *testing.T) {
	s, eng := newTestScreen(t)
	answer(t, s, "one")
	answer(t, s, "two")

	msgs := drain(answer(t, s, "three"))

	if eng.Phase() != sess.PhaseReview {
		t.Fatalf("Phase = %v, want review", eng.Phase())
	}
	var pushed screen.Screen
	for _, m := range msgs {
		if p, ok := m.(router.PushScreenMsg); ok {
			pushed = p.Screen
		}
	}
	if _, ok := pushed.(*review.ReviewScreen); !ok {
		t.Errorf("pushed %T, want review screen", pushed)
	}

	// Back on the question screen, enter reopens the review.
	msgs = drain(func() tea.Cmd { _, c := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); return c }())
	if len(msgs) != 1 {
		t.Fatalf("msgs = %#v, want one push", msgs)
	}
	if _, ok := msgs[0].(router.PushScreenMsg).Screen.(*review.ReviewScreen); !ok {
		t.Errorf("enter pushed %T, want review screen", msgs[0])
	}
}

func TestWizard_KeyHintsLeaveQuitToApp(t *testing.T) {
	s, _ := newTestScreen(t)
	check := func(stage string) {
		t.Helper()
		for _, h := range s.KeyHints() {
			if h.Key == "Ctrl+C" {
				t.Errorf("%s hints include Ctrl+C; the app footer adds it", stage)
			}
		}
	}

	check("question")
	answer(t, s, "one")
	answer(t, s, "two")
	answer(t, s, "three")
	check("review")
	if hints := s.KeyHints(); len(hints) != 1 || hints[0].Key != "Enter" {
		t.Errorf("hints after the last question = %+v, want only Enter", hints)
	}
}

func TestWizard_SecondArrivalOpensSummary(t *testing.T) {
	s, eng := newTestScreen(t)
	for _, a := range []string{"one", "two", "three"} {
		answer(t, s, a)
	}
	// Keys other than enter are ignored at the end, so retreat directly.
	text, err := eng.Retreat(context.Background())
	if err != nil {
		t.Fatalf("Retreat: %v", err)
	}
	s.Update(screen.PrefillAnswerMsg{Text: text})
	if s.input.Value() != "three" {
		t.Errorf("prefill = %q, want three", s.input.Value())
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	msgs := drain(answer(t, s, "three again"))

	if eng.Phase() != sess.PhaseFinal {
		t.Fatalf("Phase = %v, want final", eng.Phase())
	}
	var pushed screen.Screen
	for _, m := range msgs {
		if p, ok := m.(router.PushScreenMsg); ok {
			pushed = p.Screen
		}
	}
	if _, ok := pushed.(*final.FinalScreen); !ok {
		t.Errorf("pushed %T, want summary screen", pushed)
	}
}

func TestWizard_ThemeAndHistoryKeys(t *testing.T) {
	s, _ := newTestScreen(t)

	msgs := drain(func() tea.Cmd { _, c := s.Update(keyPress('t')); return c }())
	if len(msgs) != 1 || msgs[0] != (screen.ToggleThemeMsg{}) {
		t.Errorf("t produced %#v, want ToggleThemeMsg", msgs)
	}

	msgs = drain(func() tea.Cmd { _, c := s.Update(keyPress('h')); return c }())
	if len(msgs) != 1 {
		t.Fatalf("h produced %#v, want a push", msgs)
	}
	if p, ok := msgs[0].(router.PushScreenMsg); !ok || p.Screen.Title() != "History" {
		t.Errorf("h produced %#v, want history push", msgs[0])
	}
}

func TestWizard_ViewAndStatus(t *testing.T) {
	s, _ := newTestScreen(t)

	view := s.View(100, 40)
	for _, want := range []string{"What problem do you solve?", "Be specific", "Question 1 of 3", "Dimension: Problem"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if got := s.Status(); got != "Level 1 (0/2)" {
		t.Errorf("Status = %q, want %q", got, "Level 1 (0/2)")
	}
}

func TestWizard_RestartedResetsMode(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Update(keyPress('n'))
	s.Update(screen.RestartedMsg{})
	if s.mode != modeChoose {
		t.Errorf("mode = %v after restart, want choose", s.mode)
	}
}

func TestWizard_NoOpShowsInfo(t *testing.T) {
	s, _ := newTestScreen(t)

	msgs := drain(func() tea.Cmd { _, c := s.Update(keyPress('b')); return c }())
	want := screen.ToastMsg{Text: "Already at the first question", Kind: components.ToastInfo}
	if len(msgs) != 1 || msgs[0] != want {
		t.Errorf("b at start produced %#v, want %#v", msgs, want)
	}

	msgs = drain(func() tea.Cmd { _, c := s.Update(keyPress('u')); return c }())
	if len(msgs) != 1 || msgs[0].(screen.ToastMsg).Text != "Nothing to undo" {
		t.Errorf("u with no history produced %#v", msgs)
	}
}
