package session

// Snapshot is a saved traversal position.
type Snapshot struct {
	Cursor  int
	Answers []Answer
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Cursor: s.Cursor, Answers: cloneAnswers(s.Answers)}
}

// UndoHistory is a bounded stack of snapshots. Pushing past capacity evicts
// the oldest snapshot.
type UndoHistory struct {
	capacity int
	items    []Snapshot
}

// NewUndoHistory creates an UndoHistory holding at most capacity snapshots.
// Capacities below 1 are raised to 1.
func NewUndoHistory(capacity int) *UndoHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &UndoHistory{capacity: capacity}
}

// Push stores a copy of s.
func (h *UndoHistory) Push(s Snapshot) {
	h.items = append(h.items, s.clone())
	if len(h.items) > h.capacity {
		h.items = h.items[len(h.items)-h.capacity:]
	}
}

// Peek returns the most recent snapshot without removing it.
func (h *UndoHistory) Peek() (Snapshot, bool) {
	if len(h.items) == 0 {
		return Snapshot{}, false
	}
	return h.items[len(h.items)-1].clone(), true
}

// Pop removes and returns the most recent snapshot.
func (h *UndoHistory) Pop() (Snapshot, bool) {
	s, ok := h.Peek()
	if ok {
		h.items = h.items[:len(h.items)-1]
	}
	return s, ok
}

// Len returns the number of stored snapshots.
func (h *UndoHistory) Len() int { return len(h.items) }

// Cap returns the capacity.
func (h *UndoHistory) Cap() int { return h.capacity }

// Clear drops every snapshot.
func (h *UndoHistory) Clear() { h.items = nil }
