package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/config"
	"github.com/abhisek/aura/internal/logging"
	"github.com/abhisek/aura/internal/store"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List or clear journaled readings",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent readings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		source, _ := cmd.Flags().GetString("source")
		since, _ := cmd.Flags().GetDuration("since")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit, Source: source}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		readings, err := s.ReadingRepo().QueryReadings(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query readings: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(readings) == 0 {
			fmt.Fprintln(out, "No readings found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-6s  %-32s  %s\n", "Seq", "Timestamp", "Source", "Question", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range readings {
			fmt.Fprintf(out, "%-5d  %-19s  %-6s  %-32s  %s\n",
				r.Sequence,
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.Source,
				clip(r.Question, 32),
				r.Answer,
			)
		}
		return nil
	},
}

var journalClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every journaled reading",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to clear the journal without --yes")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, closeLog, err := logging.New(logging.Options{
			Level:     cfg.Log.Level,
			File:      cfg.Log.File,
			Stderr:    os.Stderr,
			Component: "journal",
		})
		if err != nil {
			return err
		}
		defer closeLog()

		s, err := openJournal(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.ReadingRepo().ClearReadings(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear readings: %w", err)
		}
		logger.Info("journal cleared", "readings", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d readings.\n", n)
		return nil
	},
}

func init() {
	journalListCmd.Flags().Int("limit", 20, "Maximum number of readings to show (0 = all)")
	journalListCmd.Flags().String("source", "", "Only show readings from this source (secret or decoy)")
	journalListCmd.Flags().Duration("since", 0, "Only show readings from the last duration, e.g. 2h")
	journalClearCmd.Flags().Bool("yes", false, "Confirm deletion")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalClearCmd)
}

func openJournal(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
