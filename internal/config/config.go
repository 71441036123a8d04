package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Output formats accepted by --output.
const (
	OutputPrint       = "print"
	OutputCSV         = "csv"
	OutputCSVHeadless = "csv-headless"
)

// Config is the root configuration for wikicaptions.
type Config struct {
	Run     RunConfig     `mapstructure:"run"     yaml:"run"`
	Wiki    WikiConfig    `mapstructure:"wiki"    yaml:"wiki"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// RunConfig describes what a single invocation samples and how it reports.
type RunConfig struct {
	Lang            string `mapstructure:"lang"             yaml:"lang"`
	Page            string `mapstructure:"page"             yaml:"page"`
	Count           int    `mapstructure:"count"            yaml:"count"`
	IgnoreTemplates bool   `mapstructure:"ignore_templates" yaml:"ignore_templates"`
	Output          string `mapstructure:"output"           yaml:"output"`
}

// WikiConfig holds the endpoint templates. "{lang}" is replaced by the
// language code.
type WikiConfig struct {
	APIURL  string `mapstructure:"api_url"  yaml:"api_url"`
	RESTURL string `mapstructure:"rest_url" yaml:"rest_url"`
}

// FetcherConfig controls the HTTP client.
type FetcherConfig struct {
	UserAgent      string        `mapstructure:"user_agent"      yaml:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"` // 0 = transport default
	MaxBodySize    int64         `mapstructure:"max_body_size"   yaml:"max_body_size"`
	RateLimit      float64       `mapstructure:"rate_limit"      yaml:"rate_limit"` // requests per second, 0 = off
	Concurrency    int           `mapstructure:"concurrency"     yaml:"concurrency"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			Count:  100,
			Output: OutputPrint,
		},
		Wiki: WikiConfig{
			APIURL:  "https://{lang}.wikipedia.org/w/api.php",
			RESTURL: "https://{lang}.wikipedia.org/api/rest_v1/page/html",
		},
		Fetcher: FetcherConfig{
			UserAgent:   "wikicaptions/" + Version + " (https://github.com/IshaanNene/wikicaptions)",
			MaxBodySize: 50 * 1024 * 1024, // 50MB
			Concurrency: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
