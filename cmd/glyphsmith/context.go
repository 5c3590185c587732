package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"glyphsmith/internal/config"
	"glyphsmith/internal/console"
	"glyphsmith/internal/logging"
)

const logFilePattern = "glyphsmith*.log"

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
	loggerErr  error
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
		cfg, resolved, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if level := c.logLevelValue(); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(cfg, c.verbose())
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		logging.PruneLogs(logger, cfg.Paths.LogDir, logFilePattern, cfg.Logging.RetentionDays, logging.LogFileName)
		logger.Debug("configuration loaded",
			logging.Path("config_path", c.configPath),
			logging.String("temp_root", cfg.Paths.TempRoot),
			logging.String("shell", cfg.Engine.Shell),
		)
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// withConsole applies the console encoding for the duration of fn and
// restores it afterwards, whatever fn returns.
func (c *commandContext) withConsole(cmd *cobra.Command, fn func(cfg *config.Config, logger *slog.Logger, out io.Writer) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return err
	}

	session, err := console.Apply(cfg.Console, cmd.OutOrStdout())
	if err != nil {
		logging.WarnWithContext(logger, "console encoding not applied", "console_encoding_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "non-ASCII paths may display incorrectly"),
			logging.String(logging.FieldErrorHint, "set console.fallback_encoding in the config file"),
		)
	}
	logger.Debug("console ready", logging.String("encoding", session.Encoding))
	defer func() {
		if err := session.Restore(); err != nil {
			logger.Warn("console restore failed", logging.Error(err))
		}
	}()

	return fn(cfg, logger, session.Writer)
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) logLevelValue() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
