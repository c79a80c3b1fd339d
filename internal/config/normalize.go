package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRecorder()
	c.normalizeLogin()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		c.Paths.DownloadDir = defaultDownloadDir
	}
	if c.Paths.DownloadDir, err = expandPath(c.Paths.DownloadDir); err != nil {
		return fmt.Errorf("paths.download_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRecorder() {
	c.Recorder.BaseURL = strings.TrimRight(strings.TrimSpace(c.Recorder.BaseURL), "/")
	if c.Recorder.BaseURL == "" {
		c.Recorder.BaseURL = defaultBaseURL
	}
	c.Recorder.DownloadBaseURL = strings.TrimRight(strings.TrimSpace(c.Recorder.DownloadBaseURL), "/")
	if c.Recorder.DownloadBaseURL == "" {
		c.Recorder.DownloadBaseURL = c.Recorder.BaseURL
	}
	c.Recorder.Origin = strings.TrimRight(strings.TrimSpace(c.Recorder.Origin), "/")
	if c.Recorder.Origin == "" {
		c.Recorder.Origin = defaultOrigin
	}
	if key, ok := os.LookupEnv("RECORDER_API_KEY"); ok && strings.TrimSpace(key) != "" {
		c.Recorder.APIKey = strings.TrimSpace(key)
	}
	if c.Recorder.RequestTimeout <= 0 {
		c.Recorder.RequestTimeout = defaultRequestTimeout
	}
}

func (c *Config) normalizeLogin() {
	c.Login.DevToolsURL = strings.TrimRight(strings.TrimSpace(c.Login.DevToolsURL), "/")
	if c.Login.DevToolsURL == "" {
		c.Login.DevToolsURL = defaultDevToolsURL
	}
	if strings.TrimSpace(c.Login.LoginURL) == "" {
		c.Login.LoginURL = defaultLoginURL
	}
	if strings.TrimSpace(c.Login.CookieDomain) == "" {
		c.Login.CookieDomain = defaultCookieDomain
	}
	if c.Login.PollIntervalSeconds <= 0 {
		c.Login.PollIntervalSeconds = defaultLoginPoll
	}
	if c.Login.TimeoutSeconds <= 0 {
		c.Login.TimeoutSeconds = defaultLoginTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
