package questions

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/bizwiz/internal/catalog"
)

func mustDecode(t *testing.T, doc string) *catalog.Node {
	t.Helper()
	n, err := catalog.Decode([]byte(doc), catalog.FormatJSON)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return n
}

func TestFlatten_Example(t *testing.T) {
	tree := mustDecode(t, `{"level1": ["Q1?", "Q2?"], "level2": {"dimA": ["Q3?"]}}`)

	got := Flatten(tree)
	want := []Record{
		{Level: "level1", Question: "Q1?"},
		{Level: "level1", Question: "Q2?"},
		{Level: "level2", Dimension: "dimA", Question: "Q3?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_StructuredEntries(t *testing.T) {
	tree := mustDecode(t, `{
		"l": [
			{"question": "Q1?", "hint": "think", "difficulty": "Beginner"},
			{"question": "Q2?", "difficulty": null},
			"Q3?"
		]
	}`)

	got := Flatten(tree)
	want := []Record{
		{Level: "l", Question: "Q1?", Hint: "think", Difficulty: DifficultyBeginner},
		{Level: "l", Question: "Q2?"},
		{Level: "l", Question: "Q3?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flatten mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_OrderIsDocumentOrder(t *testing.T) {
	tree := mustDecode(t, `{
		"z": {"d2": ["a"], "d1": ["b", "c"]},
		"a": ["d"],
		"m": {"x": ["e"]}
	}`)

	var got []string
	for _, r := range Flatten(tree) {
		got = append(got, r.Level+"/"+r.Dimension+"/"+r.Question)
	}
	want := []string{"z/d2/a", "z/d1/b", "z/d1/c", "a//d", "m/x/e"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_SkipsMalformedEntries(t *testing.T) {
	tree := mustDecode(t, `{"l": ["ok", 7, {"hint": "no question"}, null, ["nested"]]}`)

	got := Flatten(tree)
	if len(got) != 1 || got[0].Question != "ok" {
		t.Errorf("Flatten = %+v, want only the string entry", got)
	}
}

func TestFlatten_LengthMatchesLeafCount(t *testing.T) {
	docs := []string{
		`{}`,
		`{"a": []}`,
		`{"a": ["1", "2"], "b": {"x": ["3"], "y": []}}`,
		`{"a": {"x": ["1", {"question": "2"}], "y": ["3"]}, "b": ["4", "5", "6"]}`,
	}
	for _, doc := range docs {
		tree := mustDecode(t, doc)
		if got, want := len(Flatten(tree)), CountLeaves(tree); got != want {
			t.Errorf("%s: len(Flatten) = %d, CountLeaves = %d", doc, got, want)
		}
	}
}

func TestFlatten_DefaultCatalog(t *testing.T) {
	cat, err := catalog.Load(context.Background(), catalog.Default())
	if err != nil {
		t.Fatalf("load default catalog: %v", err)
	}
	flat := Flatten(cat.Questions)
	if len(flat) != CountLeaves(cat.Questions) {
		t.Errorf("len(Flatten) = %d, want %d", len(flat), CountLeaves(cat.Questions))
	}
	for i, r := range flat {
		if r.Question == "" || r.Level == "" {
			t.Errorf("record %d incomplete: %+v", i, r)
		}
	}
}

func TestFlatten_NilAndNonMap(t *testing.T) {
	if got := Flatten(nil); len(got) != 0 {
		t.Errorf("Flatten(nil) = %v, want empty", got)
	}
	if got := Flatten(catalog.Strings("a")); len(got) != 0 {
		t.Errorf("Flatten(list) = %v, want empty", got)
	}
}

func TestLevels(t *testing.T) {
	flat := []Record{
		{Level: "b"}, {Level: "b"}, {Level: "a"}, {Level: "c"}, {Level: "a"},
	}
	want := []string{"b", "a", "c"}
	if diff := cmp.Diff(want, Levels(flat)); diff != "" {
		t.Errorf("Levels mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterLevel(t *testing.T) {
	flat := []Record{
		{Level: "a", Question: "1"}, {Level: "b", Question: "2"}, {Level: "a", Question: "3"},
	}
	got := FilterLevel(flat, "a")
	if len(got) != 2 || got[0].Question != "1" || got[1].Question != "3" {
		t.Errorf("FilterLevel = %+v", got)
	}
}

func TestDifficulty_Valid(t *testing.T) {
	tests := []struct {
		d    Difficulty
		want bool
	}{
		{DifficultyNone, true},
		{DifficultyBeginner, true},
		{DifficultyIntermediate, true},
		{DifficultyAdvanced, true},
		{"Expert", false},
	}
	for _, tt := range tests {
		if got := tt.d.Valid(); got != tt.want {
			t.Errorf("Difficulty(%q).Valid() = %v, want %v", tt.d, got, tt.want)
		}
	}
}
