package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aura/internal/store"
)

// isolate points every config/data/log location at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, k := range []string{"AURA_PHRASE", "AURA_SENTINEL", "AURA_SUBMIT_DELAY_MS", "AURA_TICK_INTERVAL_MS",
		"AURA_JOURNAL", "AURA_DB", "AURA_LOG_LEVEL", "AURA_LOG_FILE"} {
		t.Setenv(k, "")
	}
	t.Setenv("AURA_CONFIG", filepath.Join(dir, "config.toml"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return dir
}

// execute runs the root command with args, resetting flag values left over
// from earlier runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func stampVersion(t *testing.T, v string) {
	t.Helper()
	prev := version
	version = v
	t.Cleanup(func() { version = prev })
}

func TestVersion(t *testing.T) {
	isolate(t)
	stampVersion(t, "v1.2.3")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "aura v1.2.3\n", out)
}

func TestVersionVerbose(t *testing.T) {
	isolate(t)
	stampVersion(t, "v1.2.3")
	out, err := execute(t, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "aura v1.2.3\n")
	assert.Contains(t, out, runtime.Version())
}

func TestConfigInitShowAndPath(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	assert.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	out, err = execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = execute(t, "config", "show", "--config", path, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, `phrase = 'Aura please answer the following question.'`)
	assert.Contains(t, out, `level = 'debug'`)
}

func TestConfigShowRejectsInvalidFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[oracle]\nsentinel = 'too long'\n"), 0o644))

	_, err := execute(t, "config", "show", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestJournalListAndClear(t *testing.T) {
	dir := isolate(t)
	db := filepath.Join(dir, "journal.db")

	out, err := execute(t, "journal", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No readings found.")

	s, err := store.Open(db)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = s.ReadingRepo().AppendReading(ctx, store.ReadingData{Question: "Will it rain?", Answer: "Seek the answer within yourself.", Source: "decoy"})
	require.NoError(t, err)
	_, err = s.ReadingRepo().AppendReading(ctx, store.ReadingData{Question: "Pick a card", Answer: "Seven of hearts", Source: "secret", SecretLength: 15})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	out, err = execute(t, "journal", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Will it rain?")
	assert.Contains(t, out, "Seven of hearts")
	assert.Less(t, strings.Index(out, "Pick a card"), strings.Index(out, "Will it rain?"))

	out, err = execute(t, "journal", "list", "--db", db, "--source", "decoy")
	require.NoError(t, err)
	assert.NotContains(t, out, "Pick a card")

	out, err = execute(t, "journal", "list", "--db", db, "--since", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "Pick a card")

	_, err = execute(t, "journal", "clear", "--db", db)
	assert.ErrorContains(t, err, "--yes")

	out, err = execute(t, "journal", "clear", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 readings.")

	out, err = execute(t, "journal", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No readings found.")
}

func TestLoadConfigFlagPrecedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[journal]\nenabled = false\npath = '/from/file.db'\n"), 0o644))
	t.Setenv("AURA_DB", filepath.Join(dir, "from-env.db"))

	_, err := execute(t, "config", "show")
	require.NoError(t, err)

	cfg, err := loadConfig(configShowCmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-env.db"), cfg.Journal.Path, "env overrides the file")

	_, err = execute(t, "config", "show", "--db", filepath.Join(dir, "from-flag.db"))
	require.NoError(t, err)
	cfg, err = loadConfig(configShowCmd)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-flag.db"), cfg.Journal.Path, "flag overrides env")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcd…", clip("abcdefgh", 5))
}
