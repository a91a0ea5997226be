package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/revquiz/internal/config"
	"github.com/abhisek/revquiz/internal/logger"
	"github.com/abhisek/revquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "revquiz",
	Short: "Exam revision quizzes in the terminal",
	Long: "RevQuiz is a terminal revision app for a 22-chapter scripture exam: " +
		"chapter study material, chapter quizzes, mock exams and a mistake log.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REVQUIZ_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Write verbose development logs")
	rootCmd.PersistentFlags().String("redis-url", "", "Cache chapter study material in Redis at this URL")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(revisionCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the command's flags taking precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db flag or db
// setting), then REVQUIZ_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore loads configuration and opens the database.
func openStore(cmd *cobra.Command) (*config.Config, *store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, s, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	path := cfg.LogFile
	if path == "" {
		p, err := logger.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		path = p
	}
	return logger.New(path, cfg.Debug)
}
