package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"SHEETFACTS_LOG_LEVEL", "SHEETFACTS_LOG_MODE", "SHEETFACTS_LOG",
	"SHEETFACTS_FORMAT", "SHEETFACTS_PRETTY", "SHEETFACTS_FORMULAS",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, value) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "warn", LogMode: "TEXT", Format: "json"}, cfg)
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEETFACTS_FORMAT", "yaml")
	t.Setenv("SHEETFACTS_PRETTY", "true")
	t.Setenv("SHEETFACTS_LOG", "/var/log/sheetfacts.log")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.True(t, cfg.Pretty)
	assert.False(t, cfg.Formulas)

	opts := cfg.LogOptions()
	assert.Equal(t, "/var/log/sheetfacts.log", opts.File)
	assert.Equal(t, "warn", opts.Level)
}

func TestParseInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEETFACTS_PRETTY", "maybe")

	_, err := Parse()
	assert.Error(t, err)
}

func TestLoadFrom(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHEETFACTS_FORMAT", "json")

	envfile := filepath.Join(t.TempDir(), ".env")
	content := "SHEETFACTS_FORMULAS=true\nSHEETFACTS_LOG_LEVEL=debug\nSHEETFACTS_FORMAT=yaml\n"
	require.NoError(t, os.WriteFile(envfile, []byte(content), 0644))

	cfg, err := LoadFrom(envfile)
	require.NoError(t, err)
	assert.True(t, cfg.Formulas)
	assert.Equal(t, "debug", cfg.LogLevel)
	// The environment wins over the file
	assert.Equal(t, "json", cfg.Format)

	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
