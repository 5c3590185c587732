package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeEngine(); err != nil {
		return err
	}
	c.normalizeOperations()
	c.normalizeConsole()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InstallDir) == "" {
		c.Paths.InstallDir = defaultInstallDir()
	}
	if c.Paths.InstallDir, err = expandPath(c.Paths.InstallDir); err != nil {
		return fmt.Errorf("paths.install_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ScriptsDir) == "" {
		if value, ok := os.LookupEnv("GLYPHSMITH_SCRIPTS_DIR"); ok && strings.TrimSpace(value) != "" {
			c.Paths.ScriptsDir = strings.TrimSpace(value)
		} else if c.Paths.InstallDir != "" {
			c.Paths.ScriptsDir = filepath.Join(c.Paths.InstallDir, "scripts")
		}
	}
	if c.Paths.ScriptsDir, err = expandPath(c.Paths.ScriptsDir); err != nil {
		return fmt.Errorf("paths.scripts_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.TempRoot) == "" {
		if value, ok := os.LookupEnv("GLYPHSMITH_TEMP_ROOT"); ok && strings.TrimSpace(value) != "" {
			c.Paths.TempRoot = strings.TrimSpace(value)
		} else {
			c.Paths.TempRoot = defaultTempRoot()
		}
	}
	if c.Paths.TempRoot, err = expandPath(c.Paths.TempRoot); err != nil {
		return fmt.Errorf("paths.temp_root: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeEngine() error {
	c.Engine.Binary = strings.TrimSpace(c.Engine.Binary)
	if c.Engine.Binary == "" {
		if value, ok := os.LookupEnv("GLYPHSMITH_ENGINE"); ok {
			c.Engine.Binary = strings.TrimSpace(value)
		}
	}
	// Bare command names stay as-is for PATH lookup; anything with a
	// separator is a filesystem path.
	if strings.ContainsAny(c.Engine.Binary, `/\`) || strings.HasPrefix(c.Engine.Binary, "~") {
		expanded, err := expandPath(c.Engine.Binary)
		if err != nil {
			return fmt.Errorf("engine.binary: %w", err)
		}
		c.Engine.Binary = expanded
	}
	c.Engine.Shell = strings.ToLower(strings.TrimSpace(c.Engine.Shell))
	if c.Engine.Shell == "" {
		c.Engine.Shell = defaultShell
	}
	c.Engine.OptimizeScript = defaultIfBlank(c.Engine.OptimizeScript, defaultOptimizeScript)
	c.Engine.ConvertScript = defaultIfBlank(c.Engine.ConvertScript, defaultConvertScript)
	c.Engine.MergeScript = defaultIfBlank(c.Engine.MergeScript, defaultMergeScript)
	return nil
}

func (c *Config) normalizeOperations() {
	if c.Optimize.Simplify == 0 || math.IsNaN(c.Optimize.Simplify) {
		c.Optimize.Simplify = defaultSimplify
	}
	c.Convert.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Convert.Format), "."))
	if c.Convert.Format == "" {
		c.Convert.Format = defaultConvertFormat
	}
	c.Merge.FontName = defaultIfBlank(c.Merge.FontName, defaultMergeFontName)
	c.Merge.OutputName = defaultIfBlank(c.Merge.OutputName, defaultMergeOutputName)
}

func (c *Config) normalizeConsole() {
	if c.Console.CodePage < 0 {
		c.Console.CodePage = 0
	}
	if c.Console.FallbackCodePage < 0 {
		c.Console.FallbackCodePage = 0
	}
	c.Console.FallbackEncoding = strings.ToLower(strings.TrimSpace(c.Console.FallbackEncoding))
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func defaultIfBlank(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
