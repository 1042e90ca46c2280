package session

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// FinalStats holds the data displayed on the final screen.
type FinalStats struct {
	CompletedAt    time.Time
	Elapsed        time.Duration
	ElapsedMinutes int
	AnswerCount    int
	Answers        []Answer
}

func buildFinalStats(answers []Answer, startedAt, now time.Time) *FinalStats {
	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return &FinalStats{
		CompletedAt:    now,
		Elapsed:        elapsed,
		ElapsedMinutes: int(math.Round(elapsed.Minutes())),
		AnswerCount:    len(answers),
		Answers:        cloneAnswers(answers),
	}
}

// FormatSummary renders answers as numbered plain text blocks.
func FormatSummary(answers []Answer) string {
	var b strings.Builder
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. [%s]", i+1, a.Level)
		if a.Dimension != "" {
			fmt.Fprintf(&b, " (%s)", a.Dimension)
		}
		fmt.Fprintf(&b, "\n%s\n   → Answer: %s\n\n", a.Question, a.Answer)
	}
	return b.String()
}

// MarkdownSummary renders answers as a Markdown document grouped by level.
func MarkdownSummary(answers []Answer) string {
	var b strings.Builder
	b.WriteString("# Business Builder Summary\n\n")
	if len(answers) == 0 {
		b.WriteString("_No answers yet._\n")
		return b.String()
	}

	level := ""
	for i, a := range answers {
		if i == 0 || a.Level != level {
			level = a.Level
			fmt.Fprintf(&b, "## %s\n\n", HumanizeKey(level))
		}
		fmt.Fprintf(&b, "%d. **%s**", i+1, a.Question)
		if a.Dimension != "" {
			fmt.Fprintf(&b, " _(%s)_", HumanizeKey(a.Dimension))
		}
		fmt.Fprintf(&b, "\n\n   %s\n\n", a.Answer)
	}
	return b.String()
}

// HumanizeKey turns a catalog key such as "level_1_spark" into "Level 1 Spark".
func HumanizeKey(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
