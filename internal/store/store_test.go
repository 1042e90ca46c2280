package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own named in-memory database.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestOpenFileDB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bizwiz.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bizwiz.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = s.StateRepo().Save(ctx, SessionStateData{
		Version: "v1.0.0",
		Cursor:  1,
		Answers: []AnswerData{{Level: "l1", Question: "Q?", Answer: "A"}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.StateRepo().Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.Cursor != 1 || len(got.Answers) != 1 || got.Answers[0].Answer != "A" {
		t.Errorf("reloaded state = %+v", got)
	}
}

func TestKVPutGetDelete(t *testing.T) {
	s := openTestStore(t)
	kv := s.kv()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Put(ctx, "k", "one"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || v != "two" {
		t.Errorf("Get = (%q, %v, %v), want (two, true, nil)", v, ok, err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM kv").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
}

func TestStateRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.StateRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil state, got %+v", got)
	}

	want := SessionStateData{
		Version: "v1.0.0",
		Cursor:  2,
		Answers: []AnswerData{
			{Level: "l1", Question: "Q1?", Answer: "a"},
			{Level: "l3", Dimension: "market", Question: "Q2?", Answer: "b"},
		},
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cursor != 2 || got.Version != "v1.0.0" {
		t.Errorf("state = %+v", got)
	}
	if len(got.Answers) != 2 || got.Answers[1].Dimension != "market" {
		t.Errorf("answers = %+v", got.Answers)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err = repo.Load(ctx)
	if err != nil || got != nil {
		t.Errorf("after clear = (%+v, %v), want (nil, nil)", got, err)
	}
}

func TestStateRepo_WireFormat(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.StateRepo().Save(ctx, SessionStateData{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, err := s.kv().Get(ctx, KeyProgress)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != `{"cursor":0,"answers":[]}` {
		t.Errorf("raw = %s", raw)
	}
}

func TestStateRepo_LoadsBrowserRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	raw := `{"cursor":2,"answers":[` +
		`{"level":"level1","dimension":null,"question":"What is your idea?","answer":"Bakery"},` +
		`{"level":"level2","dimension":"market","question":"Who buys?","answer":"Locals"}]}`
	if err := s.kv().Put(ctx, KeyProgress, raw); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.StateRepo().Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cursor != 2 || len(got.Answers) != 2 {
		t.Fatalf("loaded cursor=%d answers=%d, want 2 and 2", got.Cursor, len(got.Answers))
	}
	if got.Answers[0].Dimension != "" || got.Answers[1].Dimension != "market" {
		t.Errorf("dimensions = %q, %q", got.Answers[0].Dimension, got.Answers[1].Dimension)
	}
}

func TestStateRepo_CorruptRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.kv().Put(ctx, KeyProgress, "{not json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.StateRepo().Load(ctx); err == nil {
		t.Error("expected decode error")
	}
}

func TestHistoryRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	list, err := repo.List(ctx)
	if err != nil || len(list) != 0 {
		t.Fatalf("List(empty) = (%v, %v)", list, err)
	}

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < MaxHistory+3; i++ {
		err := repo.Append(ctx, HistoryEntry{
			ID:             string(rune('a' + i)),
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
			AnswerCount:    i,
			ElapsedMinutes: i * 2,
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != MaxHistory {
		t.Fatalf("len = %d, want %d", len(list), MaxHistory)
	}
	if list[0].AnswerCount != MaxHistory+2 {
		t.Errorf("newest answers = %d, want %d", list[0].AnswerCount, MaxHistory+2)
	}
	if !list[0].Timestamp.Equal(base.Add(time.Duration(MaxHistory+2) * time.Minute)) {
		t.Errorf("newest timestamp = %v", list[0].Timestamp)
	}
	if list[MaxHistory-1].AnswerCount != 3 {
		t.Errorf("oldest kept answers = %d, want 3", list[MaxHistory-1].AnswerCount)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if list, _ := repo.List(ctx); len(list) != 0 {
		t.Errorf("after clear len = %d", len(list))
	}
}

func TestHistoryRepo_ReplacesCorruptLog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.kv().Put(ctx, KeyHistory, "garbage"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.HistoryRepo().List(ctx); err == nil {
		t.Error("expected decode error from List")
	}
	if err := s.HistoryRepo().Append(ctx, HistoryEntry{ID: "x", AnswerCount: 4}); err != nil {
		t.Fatalf("append: %v", err)
	}
	list, err := s.HistoryRepo().List(ctx)
	if err != nil || len(list) != 1 || list[0].ID != "x" {
		t.Errorf("List = (%+v, %v)", list, err)
	}
}

func TestPrefRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.PrefRepo()
	ctx := context.Background()

	theme, err := repo.Theme(ctx)
	if err != nil || theme != ThemeLight {
		t.Fatalf("Theme(default) = (%q, %v), want light", theme, err)
	}

	if err := repo.SetTheme(ctx, ThemeDark); err != nil {
		t.Fatalf("set: %v", err)
	}
	if theme, _ := repo.Theme(ctx); theme != ThemeDark {
		t.Errorf("Theme = %q, want dark", theme)
	}

	if err := repo.SetTheme(ctx, "neon"); err == nil {
		t.Error("expected error for unknown theme")
	}
	if theme, _ := repo.Theme(ctx); theme != ThemeDark {
		t.Errorf("Theme after rejected set = %q, want dark", theme)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "db.sqlite")
		t.Setenv("BIZWIZ_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("BIZWIZ_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "bizwiz", "bizwiz.db")
		if got != want {
			t.Errorf("path = %q, want %q", got, want)
		}
	})
}
