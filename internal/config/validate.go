package config

import (
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecorder(); err != nil {
		return err
	}
	if err := c.validateLogin(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRecorder() error {
	if c.Recorder.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/recorderctl/config.toml"
		}
		return fmt.Errorf("recorder.api_key is required. Set RECORDER_API_KEY env var or edit %s (create with 'recorderctl config init')", defaultPath)
	}
	for name, value := range map[string]string{
		"recorder.base_url":          c.Recorder.BaseURL,
		"recorder.download_base_url": c.Recorder.DownloadBaseURL,
		"recorder.origin":            c.Recorder.Origin,
	} {
		parsed, err := url.Parse(value)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%s is not a valid URL: %q", name, value)
		}
	}
	if c.Recorder.AccountIndex < 0 {
		return fmt.Errorf("recorder.account_index must not be negative, got %d", c.Recorder.AccountIndex)
	}
	return nil
}

func (c *Config) validateLogin() error {
	parsed, err := url.Parse(c.Login.DevToolsURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("login.devtools_url is not a valid URL: %q", c.Login.DevToolsURL)
	}
	if c.Login.TimeoutSeconds < c.Login.PollIntervalSeconds {
		return fmt.Errorf("login.timeout_seconds (%d) must not be below login.poll_interval_seconds (%d)",
			c.Login.TimeoutSeconds, c.Login.PollIntervalSeconds)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
