package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var langCodeRe = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Run.Lang == "" {
		return fmt.Errorf("run.lang is required")
	}
	if !langCodeRe.MatchString(cfg.Run.Lang) {
		return fmt.Errorf("run.lang %q is not a wiki language code", cfg.Run.Lang)
	}
	if cfg.Run.Count < 1 {
		return fmt.Errorf("run.count must be >= 1, got %d", cfg.Run.Count)
	}

	validOutputs := map[string]bool{
		OutputPrint: true, OutputCSV: true, OutputCSVHeadless: true,
	}
	if !validOutputs[cfg.Run.Output] {
		return fmt.Errorf("run.output %q is not supported (valid: print, csv, csv-headless)", cfg.Run.Output)
	}

	if err := validateEndpoint("wiki.api_url", cfg.Wiki.APIURL); err != nil {
		return err
	}
	if err := validateEndpoint("wiki.rest_url", cfg.Wiki.RESTURL); err != nil {
		return err
	}

	if cfg.Fetcher.UserAgent == "" {
		return fmt.Errorf("fetcher.user_agent must not be empty")
	}
	if cfg.Fetcher.RequestTimeout < 0 {
		return fmt.Errorf("fetcher.request_timeout must be >= 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.RateLimit < 0 {
		return fmt.Errorf("fetcher.rate_limit must be >= 0, got %g", cfg.Fetcher.RateLimit)
	}
	if cfg.Fetcher.Concurrency < 1 {
		return fmt.Errorf("fetcher.concurrency must be >= 1, got %d", cfg.Fetcher.Concurrency)
	}
	if cfg.Fetcher.Concurrency > 64 {
		return fmt.Errorf("fetcher.concurrency must be <= 64, got %d", cfg.Fetcher.Concurrency)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// validateEndpoint checks an endpoint template once {lang} is filled in.
func validateEndpoint(name, tmpl string) error {
	u, err := url.Parse(strings.ReplaceAll(tmpl, "{lang}", "en"))
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must have a host", name)
	}
	return nil
}
