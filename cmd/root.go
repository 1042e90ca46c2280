package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/bizwiz/internal/config"
	"github.com/abhisek/bizwiz/internal/logging"
	"github.com/abhisek/bizwiz/internal/store"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bizwiz",
	Short: "Guided business plan questionnaire",
	Long: "bizwiz walks you through a business plan one question at a time, " +
		"offers prompts when you are stuck, and keeps your answers between runs.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BIZWIZ_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog directory or base URL (overrides BIZWIZ_CATALOG_DIR and BIZWIZ_CATALOG_URL)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log at debug level")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load if present")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration, applies flag overrides, and opens the log file.
func setup(cmd *cobra.Command, args []string) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	c, err := config.Load(envFile)
	if err != nil {
		return err
	}

	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if src, _ := cmd.Flags().GetString("catalog"); src != "" {
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			c.CatalogURL = src
		} else {
			c.CatalogDir = src
			c.CatalogURL = ""
		}
	}
	cfg = c

	logFile := c.LogFile
	if logFile == "" {
		dir, err := store.DataDir()
		if err != nil {
			return err
		}
		logFile = logging.DefaultFile(dir)
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	l, err := logging.New(logging.Options{File: logFile, Level: c.LogLevel, Verbose: verbose})
	if err != nil {
		return err
	}
	logger = l.With(zap.String("command", cmd.Name()))
	return nil
}

// resolveDBPath returns the database path using --db / BIZWIZ_DB when set,
// then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
