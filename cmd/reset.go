package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved session and start over",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.StateRepo().Clear(ctx); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Println("Saved session cleared.")

		if all, _ := cmd.Flags().GetBool("history"); all {
			if err := st.HistoryRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("History cleared.")
		}
		logger.Info("reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Also clear the completed-session history")
}
