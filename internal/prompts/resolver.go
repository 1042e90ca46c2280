// Package prompts resolves canned answer suggestions for a question.
package prompts

import (
	"strings"

	"github.com/abhisek/bizwiz/internal/catalog"
)

// NotFound is returned when the prompt catalog has no entry for a level.
const NotFound = "No prompt found for this level."

// Separator joins prompt strings. Bulleted adds the matching lead bullet.
const Separator = "\n\n• "

// Bulleted prefixes resolved prompt text with the bullet Separator uses
// between items. NotFound and empty text are returned unchanged.
func Bulleted(text string) string {
	if text == "" || text == NotFound {
		return text
	}
	return "• " + text
}

type keyword struct {
	match string // substring looked for in the lower-cased question
	key   string // prompt catalog key
}

// keywords is checked in order; the first keyword that appears in the question
// and has prompts under its key wins.
var keywords = []keyword{
	{"idea", "idea"},
	{"name", "name"},
	{"tagline", "tagline"},
	{"one-line", "oneliner"},
	{"one line", "oneliner"},
	{"audience", "audience"},
	{"problem", "problem"},
	{"solution", "solution"},
	{"competitor", "competitors"},
	{"vibe", "brand_vibe"},
	{"goal", "goals"},
	{"market", "market"},
	{"revenue", "revenue_model"},
	{"value", "value_proposition"},
	{"feature", "features_benefits"},
	{"time", "timing"},
	{"segment", "customer_segments"},
	{"strength", "founder_strengths"},
	{"weakness", "founder_weaknesses"},
	{"motivation", "motivation"},
	{"budget", "budget"},
	{"risk", "risks"},
	{"limitation", "constraints"},
}

// Resolver looks up prompts in a prompt catalog tree.
type Resolver struct {
	tree *catalog.Node
}

// NewResolver creates a Resolver over the prompts document.
func NewResolver(tree *catalog.Node) *Resolver {
	return &Resolver{tree: tree}
}

// Resolve returns the prompt text for a question. dimension may be empty.
func (r *Resolver) Resolve(level, dimension, question string) string {
	levelPrompts, ok := r.tree.Get(level)
	if !ok {
		return NotFound
	}

	if dimension != "" {
		if dim, ok := levelPrompts.Get(dimension); ok && dim.Kind == catalog.KindMap {
			return strings.Join(collect(dim), Separator)
		}
	}

	q := strings.ToLower(question)
	for _, kw := range keywords {
		if !strings.Contains(q, kw.match) {
			continue
		}
		if v, ok := levelPrompts.Get(kw.key); ok && v.Kind == catalog.KindList {
			return strings.Join(v.StringItems(), Separator)
		}
	}

	return strings.Join(collect(levelPrompts), Separator)
}

// Keyword returns the prompt key the question would match by keyword, and
// whether any keyword matched. It ignores whether the catalog has that key.
func Keyword(question string) (string, bool) {
	q := strings.ToLower(question)
	for _, kw := range keywords {
		if strings.Contains(q, kw.match) {
			return kw.key, true
		}
	}
	return "", false
}

// collect gathers every string under n: list items directly, and list items
// one mapping level further down.
func collect(n *catalog.Node) []string {
	var all []string
	switch n.Kind {
	case catalog.KindList:
		all = append(all, n.StringItems()...)
	case catalog.KindMap:
		for _, f := range n.Fields {
			switch f.Value.Kind {
			case catalog.KindList:
				all = append(all, f.Value.StringItems()...)
			case catalog.KindMap:
				for _, sub := range f.Value.Fields {
					all = append(all, sub.Value.StringItems()...)
				}
			}
		}
	}
	return all
}
