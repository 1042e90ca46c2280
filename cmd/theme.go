package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		prefs := st.PrefRepo()
		if len(args) == 0 {
			t, err := prefs.Theme(ctx)
			if err != nil {
				return err
			}
			fmt.Println(t)
			return nil
		}

		if err := prefs.SetTheme(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("Theme set to", args[0])
		return nil
	},
}
