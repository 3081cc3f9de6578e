package main

import (
	"log/slog"

	"github.com/joho/godotenv"

	"whisparr/internal/config"
	"whisparr/internal/logging"
)

// commandContext resolves configuration and logging once per invocation and
// shares them across commands.
type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	// Provider API keys may live in a local .env; absence is fine.
	_ = godotenv.Load()

	path := ""
	if c.configFlag != nil {
		path = *c.configFlag
	}
	cfg, resolved, _, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	c.cfgPath = resolved
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if c.logLevelFlag != nil && *c.logLevelFlag != "" {
		opts.Level = *c.logLevelFlag
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
