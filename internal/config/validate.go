package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// OutputFormats lists the font formats the engine can export.
var OutputFormats = []string{"ttf", "otf", "woff", "woff2", "eot", "svg"}

// IsOutputFormat reports whether format (without a leading dot) is exportable.
func IsOutputFormat(format string) bool {
	format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	for _, candidate := range OutputFormats {
		if candidate == format {
			return true
		}
	}
	return false
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateOperations(); err != nil {
		return err
	}
	if err := c.validateConsole(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEngine() error {
	switch c.Engine.Shell {
	case ShellNone, ShellSh, ShellCmd:
	default:
		return fmt.Errorf("engine.shell must be one of none, sh, cmd (got %q)", c.Engine.Shell)
	}
	if strings.TrimSpace(c.Paths.TempRoot) == "" {
		return errors.New("paths.temp_root must be set")
	}
	return nil
}

func (c *Config) validateOperations() error {
	if c.Optimize.Simplify <= 0 || math.IsInf(c.Optimize.Simplify, 0) {
		return errors.New("optimize.simplify must be a positive number")
	}
	if !IsOutputFormat(c.Convert.Format) {
		return fmt.Errorf("convert.format must be one of %s (got %q)", strings.Join(OutputFormats, ", "), c.Convert.Format)
	}
	if strings.ContainsAny(c.Merge.OutputName, `/\`) {
		return errors.New("merge.output_name must be a file name, not a path")
	}
	return nil
}

func (c *Config) validateConsole() error {
	if c.Console.CodePage > 65535 || c.Console.FallbackCodePage > 65535 {
		return errors.New("console code pages must be between 0 and 65535")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
