package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.OutputCSV = filepath.Join(cfg.DataDir, "out.csv")
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultFirstYear, cfg.FirstYear)
	assert.Equal(t, DefaultLastYear, cfg.LastYear)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.MaxFileSize)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.False(t, cfg.Offline)
	assert.Empty(t, cfg.DBPath)
}

func TestValidate(t *testing.T) {
	cfg := validTestConfig(t)
	require.NoError(t, cfg.Validate())
}

func TestValidateCreatesDataDir(t *testing.T) {
	cfg := validTestConfig(t)
	cfg.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, cfg.Validate())
	assert.DirExists(t, cfg.DataDir)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty csv path", func(c *Config) { c.OutputCSV = "" }},
		{"first year too early", func(c *Config) { c.FirstYear = 1970 }},
		{"inverted year range", func(c *Config) { c.FirstYear = 2025; c.LastYear = 2020 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"non-positive max file size", func(c *Config) { c.MaxFileSize = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig(t)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestYears(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FirstYear = 2022
	cfg.LastYear = 2024

	assert.Equal(t, []int{2022, 2023, 2024}, cfg.Years())

	cfg.LastYear = 2022
	assert.Equal(t, []int{2022}, cfg.Years())
}

func TestIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsDebug())

	cfg.LogLevel = "debug"
	assert.True(t, cfg.IsDebug())
}

func TestString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()
	assert.Contains(t, s, "2020-2026")
	assert.Contains(t, s, "LogLevel: info")
}
