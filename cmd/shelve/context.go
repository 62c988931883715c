package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/faults"
	"shelve/internal/history"
	"shelve/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	verboseFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		verboseFlag:  verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = faults.Wrap(faults.ErrConfigParse, "config", "load", path, err)
			return
		}
		if path != "" && !exists {
			c.configErr = faults.Wrap(faults.ErrConfigNotFound, "config", "load",
				fmt.Sprintf("config file %s does not exist", resolved), nil)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// loggerFor returns the shared CLI logger. Logs always go to the daily log
// file; --verbose mirrors them to stderr.
func (c *commandContext) loggerFor(cfg *config.Config) *slog.Logger {
	c.loggerOnce.Do(func() {
		console := c.verboseFlag != nil && *c.verboseFlag
		logger, err := logging.NewFromConfig(cfg, console)
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// prepareState creates the state and log directories. Commands call it only
// once their arguments have been validated.
func (c *commandContext) prepareState(cfg *config.Config) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return faults.Wrap(faults.ErrHistory, "config", "create state directories", cfg.Paths.StateDir, err)
	}
	return nil
}

func (c *commandContext) openHistory(cfg *config.Config) (*history.Store, error) {
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, faults.Wrap(faults.ErrHistory, "history", "open", cfg.HistoryPath(), err)
	}
	return store, nil
}

func (c *commandContext) withHistory(fn func(*config.Config, *history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	if err := c.prepareState(cfg); err != nil {
		return err
	}
	store, err := c.openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(cfg, store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
