package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/bizwiz/internal/app"
)

// runApp opens the store, loads the catalog, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	return app.Run(ctx, app.Options{
		Engine:  engine,
		History: st.HistoryRepo(),
		Prefs:   st.PrefRepo(),
		Logger:  logger.Named("app"),
	})
}
