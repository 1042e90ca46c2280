package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.HistoryRepo().List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No completed sessions yet.")
			return nil
		}

		fmt.Printf("%-20s  %7s  %7s  %s\n", "Completed", "Answers", "Minutes", "ID")
		fmt.Println(strings.Repeat("─", 76))
		for _, e := range entries {
			fmt.Printf("%-20s  %7d  %7d  %s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), e.AnswerCount, e.ElapsedMinutes, e.ID)
		}
		fmt.Printf("\n%d sessions\n", len(entries))
		return nil
	},
}
