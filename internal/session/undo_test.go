package session

import "testing"

func TestUndoHistory_PushPop(t *testing.T) {
	h := NewUndoHistory(3)
	for i := 1; i <= 3; i++ {
		h.Push(Snapshot{Cursor: i})
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	for want := 3; want >= 1; want-- {
		s, ok := h.Pop()
		if !ok || s.Cursor != want {
			t.Errorf("Pop = (%d, %v), want (%d, true)", s.Cursor, ok, want)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("Pop on empty history should report false")
	}
}

func TestUndoHistory_EvictsOldest(t *testing.T) {
	h := NewUndoHistory(2)
	for i := 1; i <= 5; i++ {
		h.Push(Snapshot{Cursor: i})
	}
	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	if s, _ := h.Pop(); s.Cursor != 5 {
		t.Errorf("first pop = %d, want 5", s.Cursor)
	}
	if s, _ := h.Pop(); s.Cursor != 4 {
		t.Errorf("second pop = %d, want 4", s.Cursor)
	}
}

func TestUndoHistory_DeepCopies(t *testing.T) {
	h := NewUndoHistory(2)
	answers := []Answer{{Answer: "original"}}
	h.Push(Snapshot{Cursor: 1, Answers: answers})

	answers[0].Answer = "mutated"
	s, _ := h.Peek()
	if s.Answers[0].Answer != "original" {
		t.Errorf("stored snapshot changed with caller slice: %q", s.Answers[0].Answer)
	}

	s.Answers[0].Answer = "mutated again"
	s, _ = h.Pop()
	if s.Answers[0].Answer != "original" {
		t.Errorf("stored snapshot changed through Peek result: %q", s.Answers[0].Answer)
	}
}

func TestUndoHistory_MinimumCapacity(t *testing.T) {
	h := NewUndoHistory(0)
	if h.Cap() != 1 {
		t.Errorf("Cap = %d, want 1", h.Cap())
	}
	h.Push(Snapshot{Cursor: 1})
	h.Push(Snapshot{Cursor: 2})
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d", h.Len())
	}
}
