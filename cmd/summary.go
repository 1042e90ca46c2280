package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/bizwiz/internal/session"
	"github.com/abhisek/bizwiz/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the answers of the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		engine, err := newEngine(ctx, st)
		if err != nil {
			return err
		}
		answers := engine.Answers()

		if plain, _ := cmd.Flags().GetBool("plain"); plain {
			if len(answers) == 0 {
				fmt.Println("No answers yet.")
				return nil
			}
			fmt.Print(session.FormatSummary(answers))
			return nil
		}

		style := store.ThemeLight
		if t, err := st.PrefRepo().Theme(ctx); err == nil {
			style = t
		} else {
			logger.Warn("load theme failed", zap.Error(err))
		}
		width, _ := cmd.Flags().GetInt("width")
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		out, err := r.Render(session.MarkdownSummary(answers))
		if err != nil {
			return fmt.Errorf("render summary: %w", err)
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	summaryCmd.Flags().Bool("plain", false, "Print plain text instead of rendered Markdown")
	summaryCmd.Flags().Int("width", 80, "Wrap rendered output at this width")
}
