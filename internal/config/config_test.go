package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Run.Lang = "en"
	return cfg
}

func TestDefaultConfigIsValidOnceLangIsSet(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 100, cfg.Run.Count)
	assert.Equal(t, OutputPrint, cfg.Run.Output)
	assert.Equal(t, 1, cfg.Fetcher.Concurrency)
	assert.Error(t, Validate(cfg), "lang is required")

	require.NoError(t, Validate(validConfig()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad lang", func(c *Config) { c.Run.Lang = "EN wiki" }},
		{"zero count", func(c *Config) { c.Run.Count = 0 }},
		{"unknown output", func(c *Config) { c.Run.Output = "json" }},
		{"bad api scheme", func(c *Config) { c.Wiki.APIURL = "ftp://{lang}.wikipedia.org/w/api.php" }},
		{"rest without host", func(c *Config) { c.Wiki.RESTURL = "/api/rest_v1/page/html" }},
		{"empty user agent", func(c *Config) { c.Fetcher.UserAgent = "" }},
		{"negative timeout", func(c *Config) { c.Fetcher.RequestTimeout = -time.Second }},
		{"zero body size", func(c *Config) { c.Fetcher.MaxBodySize = 0 }},
		{"negative rate", func(c *Config) { c.Fetcher.RateLimit = -1 }},
		{"zero concurrency", func(c *Config) { c.Fetcher.Concurrency = 0 }},
		{"huge concurrency", func(c *Config) { c.Fetcher.Concurrency = 1000 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestValidateAcceptsEveryOutput(t *testing.T) {
	for _, out := range []string{OutputPrint, OutputCSV, OutputCSVHeadless} {
		cfg := validConfig()
		cfg.Run.Output = out
		assert.NoError(t, Validate(cfg), out)
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wikicaptions.yaml")
	content := `
run:
  lang: de
  count: 7
fetcher:
  concurrency: 4
  rate_limit: 2.5
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("WIKICAPTIONS_RUN_OUTPUT", "csv")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Run.Lang)
	assert.Equal(t, 7, cfg.Run.Count)
	assert.Equal(t, "csv", cfg.Run.Output)
	assert.Equal(t, 4, cfg.Fetcher.Concurrency)
	assert.InDelta(t, 2.5, cfg.Fetcher.RateLimit, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DefaultConfig().Wiki.RESTURL, cfg.Wiki.RESTURL)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
