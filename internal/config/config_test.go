package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PREPSMART_DB", filepath.Join(dir, "p.db"))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "p.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "prepsmart.log"), cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.QuizDelay)
	assert.False(t, cfg.Debug)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PREPSMART_DB", filepath.Join(dir, "env.db"))
	t.Setenv("PREPSMART_CATALOG_DIR", "/srv/modules")
	t.Setenv("PREPSMART_QUIZ_DELAY", "250ms")
	t.Setenv("PREPSMART_LOG_FILE", "-")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/srv/modules", cfg.CatalogDir)
	assert.Equal(t, 250*time.Millisecond, cfg.QuizDelay)
	assert.Equal(t, "-", cfg.LogFile)
}

func TestFlagsWinOverEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PREPSMART_LOG_LEVEL", "warn")
	t.Setenv("PREPSMART_QUIZ_DELAY", "2s")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db", filepath.Join(dir, "nested", "flag.db"), "--log-level", "debug"}))

	v := New()
	require.NoError(t, BindFlags(v, fs))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "nested", "flag.db"), cfg.DBPath)
	assert.DirExists(t, filepath.Join(dir, "nested"))
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.QuizDelay, "unset flag falls back to env")
}

func TestNegativeQuizDelay(t *testing.T) {
	t.Setenv("PREPSMART_DB", filepath.Join(t.TempDir(), "p.db"))
	t.Setenv("PREPSMART_QUIZ_DELAY", "-1s")
	_, err := Load(New())
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREPSMART_CATALOG_DIR=/from/dotenv\nPREPSMART_LOG_LEVEL=error\n"), 0o600))

	t.Setenv("PREPSMART_LOG_LEVEL", "warn")
	t.Setenv("PREPSMART_DB", filepath.Join(dir, "p.db"))
	// Registered so t.Setenv restores it after the dotenv load sets it.
	t.Setenv("PREPSMART_CATALOG_DIR", "")
	os.Unsetenv("PREPSMART_CATALOG_DIR")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.CatalogDir)
	assert.Equal(t, "warn", cfg.LogLevel, "existing env is not overridden")
}
