package session

import "github.com/abhisek/bizwiz/internal/questions"

// LevelProgress counts answered questions within one level.
type LevelProgress struct {
	Level    string
	Answered int
	Total    int
}

// Complete reports whether every question in the level is answered.
func (lp LevelProgress) Complete() bool {
	return lp.Total > 0 && lp.Answered >= lp.Total
}

// SectionProgress returns per-level counts in first-appearance order. A
// question counts as answered when its index is below the cursor.
func (e *Engine) SectionProgress() []LevelProgress {
	return sectionProgress(e.flat, e.cursor)
}

// LevelProgressFor returns the counts for one level.
func (e *Engine) LevelProgressFor(level string) (LevelProgress, bool) {
	for _, lp := range e.SectionProgress() {
		if lp.Level == level {
			return lp, true
		}
	}
	return LevelProgress{}, false
}

func sectionProgress(flat []questions.Record, cursor int) []LevelProgress {
	levels := questions.Levels(flat)
	index := make(map[string]int, len(levels))
	out := make([]LevelProgress, len(levels))
	for i, l := range levels {
		index[l] = i
		out[i].Level = l
	}
	for i, r := range flat {
		lp := &out[index[r.Level]]
		lp.Total++
		if i < cursor {
			lp.Answered++
		}
	}
	return out
}
