// Package config loads Aura's settings from defaults, an optional TOML file
// and AURA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/abhisek/aura/internal/covert"
	"github.com/abhisek/aura/internal/reading"
)

const configFileName = "config.toml"

// Config holds all runtime configuration.
type Config struct {
	Oracle  OracleConfig  `toml:"oracle" json:"oracle"`
	Journal JournalConfig `toml:"journal" json:"journal"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// OracleConfig configures the petition trick and the reveal.
type OracleConfig struct {
	// Phrase is shown in the petition field while capturing.
	Phrase string `toml:"phrase" json:"phrase"`

	// Sentinel is the single character that starts and ends capture.
	Sentinel string `toml:"sentinel" json:"sentinel"`

	// SubmitDelayMs is the "thinking" time before the answer is chosen.
	SubmitDelayMs int `toml:"submit_delay_ms" json:"submit_delay_ms"`

	// TickIntervalMs is the time between revealed characters.
	TickIntervalMs int `toml:"tick_interval_ms" json:"tick_interval_ms"`

	// Answers are the decoy replies used when no secret was captured.
	Answers []string `toml:"answers" json:"answers"`
}

// JournalConfig configures the optional reading journal.
type JournalConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Path    string `toml:"path,omitempty" json:"path,omitempty"`
}

// LogConfig configures the debug log.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file,omitempty" json:"file,omitempty"`
}

// Default returns a Config with the stock trick settings.
func Default() Config {
	answers := make([]string, len(reading.DefaultAnswers))
	copy(answers, reading.DefaultAnswers)
	return Config{
		Oracle: OracleConfig{
			Phrase:         covert.DefaultPhrase,
			Sentinel:       string(covert.DefaultSentinel),
			SubmitDelayMs:  int(reading.DefaultSubmitDelay / time.Millisecond),
			TickIntervalMs: int(reading.DefaultTickInterval / time.Millisecond),
			Answers:        answers,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the TOML file at path on top of the defaults. A missing file is
// not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return string(b), nil
}

// ApplyEnv overrides cfg with AURA_* environment variables.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("AURA_PHRASE"); v != "" {
		cfg.Oracle.Phrase = v
	}
	if v := os.Getenv("AURA_SENTINEL"); v != "" {
		cfg.Oracle.Sentinel = v
	}
	if v := os.Getenv("AURA_SUBMIT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Oracle.SubmitDelayMs = n
		}
	}
	if v := os.Getenv("AURA_TICK_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Oracle.TickIntervalMs = n
		}
	}
	if v := os.Getenv("AURA_JOURNAL"); v != "" {
		cfg.Journal.Enabled = parseBool(v)
	}
	if v := os.Getenv("AURA_DB"); v != "" {
		cfg.Journal.Path = v
	}
	if v := os.Getenv("AURA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("AURA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return cfg
}

// DefaultPath resolves the config file path:
// 1. AURA_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/aura/config.toml
// 3. ~/.config/aura/config.toml
func DefaultPath() (string, error) {
	if p := os.Getenv("AURA_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "aura", configFileName), nil
}

// SentinelRune returns the sentinel as a rune.
func (o OracleConfig) SentinelRune() rune {
	r, _ := utf8.DecodeRuneInString(o.Sentinel)
	return r
}

// Controller builds the covert input controller.
func (o OracleConfig) Controller() covert.Controller {
	return covert.New(o.Phrase, o.SentinelRune())
}

// Timing builds the reveal timing.
func (o OracleConfig) Timing() reading.Timing {
	return reading.Timing{
		SubmitDelay:  time.Duration(o.SubmitDelayMs) * time.Millisecond,
		TickInterval: time.Duration(o.TickIntervalMs) * time.Millisecond,
	}
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
