package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/app"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/store"
)

// runApp loads configuration, opens the journal when enabled, and launches
// the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs only go to a file.
	logFile := cfg.Log.File
	if logFile == "" {
		if logFile, err = logging.DefaultFile(); err != nil {
			return fmt.Errorf("resolve log file: %w", err)
		}
	}
	logger, closeLog, err := logging.New(logging.Options{Level: cfg.Log.Level, File: logFile})
	if err != nil {
		return err
	}
	defer closeLog()

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	opts := app.Options{
		Config:     cfg,
		Logger:     logger,
		SkipSplash: noSplash,
	}

	if cfg.Journal.Enabled {
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		opts.Repo = st.ReadingRepo()
	}

	logger.Info("aura starting", "version", version, "journal", cfg.Journal.Enabled)
	err = app.Run(cmd.Context(), opts)
	logger.Info("aura stopped", "err", err)
	return err
}
