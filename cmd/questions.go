package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/bizwiz/internal/prompts"
	"github.com/abhisek/bizwiz/internal/questions"
	"github.com/abhisek/bizwiz/internal/session"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the question catalog",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all questions in order (optionally filtered by level)",
	RunE: func(cmd *cobra.Command, args []string) error {
		flat, _, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}

		level, _ := cmd.Flags().GetString("level")
		records := flat
		if level != "" {
			records = questions.FilterLevel(flat, level)
			if len(records) == 0 {
				return fmt.Errorf("no questions found for level %q (levels: %s)",
					level, strings.Join(questions.Levels(flat), ", "))
			}
		}

		fmt.Printf("%5s  %-22s  %-22s  %-12s  %s\n",
			"#", "Level", "Dimension", "Difficulty", "Question")
		fmt.Println(strings.Repeat("─", 115))

		// Indexes refer to the full flattened list so they work with `prompt`.
		for i, q := range flat {
			if level != "" && q.Level != level {
				continue
			}
			fmt.Printf("%5d  %-22s  %-22s  %-12s  %s\n",
				i, q.Level, q.Dimension, q.Difficulty, truncate(q.Question, 60))
		}

		fmt.Printf("\n%d questions\n", len(records))
		return nil
	},
}

var questionsPromptCmd = &cobra.Command{
	Use:   "prompt <index>",
	Short: "Show the prompts offered for a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}

		flat, resolver, err := loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		if i < 0 || i >= len(flat) {
			return fmt.Errorf("index %d out of range [0, %d)", i, len(flat))
		}

		q := flat[i]
		fmt.Printf("[%s]", session.HumanizeKey(q.Level))
		if q.Dimension != "" {
			fmt.Printf(" %s", session.HumanizeKey(q.Dimension))
		}
		fmt.Printf("\n%s\n\n%s\n", q.Question, prompts.Bulleted(resolver.Resolve(q.Level, q.Dimension, q.Question)))
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("level", "", "Only list questions in this level (e.g. level_1)")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsPromptCmd)
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
