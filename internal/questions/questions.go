// Package questions flattens the nested question catalog into the ordered
// sequence the wizard traverses.
package questions

import "github.com/abhisek/bizwiz/internal/catalog"

// Difficulty is the optional difficulty label of a question.
type Difficulty string

const (
	DifficultyNone         Difficulty = ""
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Valid reports whether d is one of the known labels (or none).
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyNone, DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Record is one question in traversal order. Dimension, Hint and Difficulty
// are empty when the catalog does not set them.
type Record struct {
	Level      string     `json:"level"`
	Dimension  string     `json:"dimension,omitempty"`
	Question   string     `json:"question"`
	Hint       string     `json:"hint,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Flatten walks levels in document order. Array-valued levels produce records
// without a dimension; object-valued levels produce one record per entry of
// each dimension, dimensions in document order. Entries that are neither a
// string nor an object carrying a question are skipped; the loader's schema
// rejects them before they get here.
func Flatten(tree *catalog.Node) []Record {
	var flat []Record
	if tree == nil || tree.Kind != catalog.KindMap {
		return flat
	}

	for _, level := range tree.Fields {
		switch level.Value.Kind {
		case catalog.KindList:
			flat = appendEntries(flat, level.Key, "", level.Value)
		case catalog.KindMap:
			for _, dim := range level.Value.Fields {
				if dim.Value.Kind != catalog.KindList {
					continue
				}
				flat = appendEntries(flat, level.Key, dim.Key, dim.Value)
			}
		}
	}
	return flat
}

func appendEntries(flat []Record, level, dimension string, entries *catalog.Node) []Record {
	for _, e := range entries.Items {
		r, ok := recordFrom(e)
		if !ok {
			continue
		}
		r.Level = level
		r.Dimension = dimension
		flat = append(flat, r)
	}
	return flat
}

func recordFrom(e *catalog.Node) (Record, bool) {
	switch e.Kind {
	case catalog.KindString:
		return Record{Question: e.Text}, true
	case catalog.KindMap:
		q := e.GetString("question")
		if q == "" {
			return Record{}, false
		}
		d := Difficulty(e.GetString("difficulty"))
		if !d.Valid() {
			d = DifficultyNone
		}
		return Record{
			Question:   q,
			Hint:       e.GetString("hint"),
			Difficulty: d,
		}, true
	}
	return Record{}, false
}

// CountLeaves returns the number of entries under every level and dimension
// list, valid or not.
func CountLeaves(tree *catalog.Node) int {
	if tree == nil || tree.Kind != catalog.KindMap {
		return 0
	}
	n := 0
	for _, level := range tree.Fields {
		switch level.Value.Kind {
		case catalog.KindList:
			n += len(level.Value.Items)
		case catalog.KindMap:
			for _, dim := range level.Value.Fields {
				if dim.Value.Kind == catalog.KindList {
					n += len(dim.Value.Items)
				}
			}
		}
	}
	return n
}

// Levels returns the distinct levels of flat in first-appearance order.
func Levels(flat []Record) []string {
	seen := make(map[string]bool)
	var levels []string
	for _, r := range flat {
		if !seen[r.Level] {
			seen[r.Level] = true
			levels = append(levels, r.Level)
		}
	}
	return levels
}

// FilterLevel returns the records belonging to level, keeping their order.
func FilterLevel(flat []Record, level string) []Record {
	var out []Record
	for _, r := range flat {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}
