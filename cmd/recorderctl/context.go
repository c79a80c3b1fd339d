package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"recorderctl/internal/auth"
	"recorderctl/internal/browser"
	"recorderctl/internal/config"
	"recorderctl/internal/logging"
	"recorderctl/internal/recorder"
	"recorderctl/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logOnce sync.Once
	log     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger() *slog.Logger {
	c.logOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.log = logging.NewNop()
			return
		}
		c.log = logger
	})
	return c.log
}

// authenticate resolves a verified credential, driving the interactive login
// flow when the saved session is missing or stale.
func (c *commandContext) authenticate(ctx context.Context, ignoreSaved bool) (session.Credential, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return session.Credential{}, err
	}
	logger := c.logger()

	store := session.NewFileStore(cfg.SessionPath())
	probe := browser.NewDevTools(cfg.Login.DevToolsURL, cfg.Login.CookieDomain)
	verifier := auth.VerifierFunc(func(ctx context.Context, cred session.Credential) error {
		client, err := recorder.New(cfg, cred, recorder.WithLogger(logger))
		if err != nil {
			return err
		}
		return client.CheckAuth(ctx)
	})

	coordinator, err := auth.NewCoordinator(store, probe, verifier, cfg.Login.LoginURL,
		auth.WithLogger(logger),
		auth.WithAccountIndex(cfg.Recorder.AccountIndex),
		auth.WithPollInterval(time.Duration(cfg.Login.PollIntervalSeconds)*time.Second),
		auth.WithLoginTimeout(time.Duration(cfg.Login.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		return session.Credential{}, err
	}
	return coordinator.Authenticate(ctx, ignoreSaved)
}

// client authenticates and returns a signing API client.
func (c *commandContext) client(ctx context.Context) (*recorder.Client, error) {
	cred, err := c.authenticate(ctx, false)
	if err != nil {
		return nil, err
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return recorder.New(cfg, cred, recorder.WithLogger(c.logger()))
}
