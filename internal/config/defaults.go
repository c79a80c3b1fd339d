package config

const (
	defaultStateDir       = "~/.local/share/recorderctl"
	defaultDownloadDir    = "~/recordings"
	defaultLogDir         = "~/.local/share/recorderctl/logs"
	defaultBaseURL        = "https://recorder.google.com"
	defaultDownloadURL    = "https://recorder.google.com"
	defaultOrigin         = "https://recorder.google.com"
	defaultRequestTimeout = 30
	defaultDevToolsURL    = "http://127.0.0.1:9222"
	defaultLoginURL       = "https://recorder.google.com/"
	defaultCookieDomain   = ".google.com"
	defaultLoginPoll      = 2
	defaultLoginTimeout   = 300
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir:    defaultStateDir,
			DownloadDir: defaultDownloadDir,
			LogDir:      defaultLogDir,
		},
		Recorder: Recorder{
			BaseURL:         defaultBaseURL,
			DownloadBaseURL: defaultDownloadURL,
			Origin:          defaultOrigin,
			RequestTimeout:  defaultRequestTimeout,
		},
		Login: Login{
			DevToolsURL:         defaultDevToolsURL,
			LoginURL:            defaultLoginURL,
			CookieDomain:        defaultCookieDomain,
			PollIntervalSeconds: defaultLoginPoll,
			TimeoutSeconds:      defaultLoginTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
