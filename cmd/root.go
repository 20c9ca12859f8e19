package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aura/internal/config"
	"github.com/abhisek/aura/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aura",
	Short: "A covert oracle for the terminal",
	Long: "Aura Replies: ask the oracle a question and watch the digital ether " +
		"type out its reply.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (overrides AURA_CONFIG env var)")
	pf.String("db", "", "Path to SQLite journal file (overrides AURA_DB env var)")
	pf.String("log-file", "", "Write JSON debug logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.Flags().Bool("journal", false, "Record finished readings in the journal")
	rootCmd.Flags().Bool("no-splash", false, "Skip the splash screen")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(journalCmd)
}

// resolveConfigPath returns --config, then AURA_CONFIG, then the XDG default.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// loadConfig layers the config file, AURA_* env vars and command-line flags,
// in that order, and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	cfg = config.ApplyEnv(cfg)

	flags := cmd.Flags()
	if p, _ := flags.GetString("db"); p != "" {
		cfg.Journal.Path = p
	}
	if p, _ := flags.GetString("log-file"); p != "" {
		cfg.Log.File = p
	}
	if l, _ := flags.GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}
	if flags.Lookup("journal") != nil && flags.Changed("journal") {
		cfg.Journal.Enabled, _ = flags.GetBool("journal")
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveDBPath returns the journal path from the config (which already
// carries --db and AURA_DB), falling back to the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if p := cfg.Journal.Path; p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}
