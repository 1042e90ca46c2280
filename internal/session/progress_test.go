package session

import (
	"context"
	"testing"

	"github.com/abhisek/bizwiz/internal/questions"
)

func TestSectionProgress(t *testing.T) {
	flat := []questions.Record{
		{Level: "a"}, {Level: "a"}, {Level: "b"}, {Level: "a"}, {Level: "c"},
	}

	tests := []struct {
		cursor int
		want   []LevelProgress
	}{
		{0, []LevelProgress{{"a", 0, 3}, {"b", 0, 1}, {"c", 0, 1}}},
		{2, []LevelProgress{{"a", 2, 3}, {"b", 0, 1}, {"c", 0, 1}}},
		{4, []LevelProgress{{"a", 3, 3}, {"b", 1, 1}, {"c", 0, 1}}},
		{5, []LevelProgress{{"a", 3, 3}, {"b", 1, 1}, {"c", 1, 1}}},
	}

	for _, tt := range tests {
		got := sectionProgress(flat, tt.cursor)
		if len(got) != len(tt.want) {
			t.Fatalf("cursor %d: len = %d, want %d", tt.cursor, len(got), len(tt.want))
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("cursor %d: level %d = %+v, want %+v", tt.cursor, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSectionProgress_SumsToCursor(t *testing.T) {
	flat := testQuestions()
	for cursor := 0; cursor <= len(flat); cursor++ {
		answered, total := 0, 0
		for _, lp := range sectionProgress(flat, cursor) {
			answered += lp.Answered
			total += lp.Total
		}
		if answered != cursor {
			t.Errorf("cursor %d: answered sum = %d", cursor, answered)
		}
		if total != len(flat) {
			t.Errorf("cursor %d: total sum = %d, want %d", cursor, total, len(flat))
		}
	}
}

func TestLevelProgressFor(t *testing.T) {
	f := newFixture(t, nil, nil)
	if err := f.engine.Advance(context.Background(), "a"); err != nil {
		t.Fatalf("advance: %v", err)
	}

	lp, ok := f.engine.LevelProgressFor("level1")
	if !ok {
		t.Fatal("expected level1 progress")
	}
	if lp.Answered != 1 || lp.Total != 2 {
		t.Errorf("level1 = %+v, want 1/2", lp)
	}
	if lp.Complete() {
		t.Error("level1 should not be complete")
	}

	if _, ok := f.engine.LevelProgressFor("missing"); ok {
		t.Error("expected no progress for unknown level")
	}
}
