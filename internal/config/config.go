package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Shell selects how the engine command line is executed.
const (
	ShellNone = "none"
	ShellSh   = "sh"
	ShellCmd  = "cmd"
)

// Operation names used to select an engine script.
const (
	OperationOptimize = "optimize"
	OperationConvert  = "convert"
	OperationMergeSVG = "merge-svg"
)

// Paths contains directory configuration. Empty values are derived at load time.
type Paths struct {
	InstallDir string `toml:"install_dir"`
	ScriptsDir string `toml:"scripts_dir"`
	TempRoot   string `toml:"temp_root"`
	LogDir     string `toml:"log_dir"`
}

// Engine describes the external FontForge engine and its operation scripts.
type Engine struct {
	// Binary is an explicit engine executable. When empty the engine is
	// looked up next to the install directory and then on PATH.
	Binary string `toml:"binary"`
	// Shell routes the invocation through a command interpreter (none, sh, cmd).
	Shell          string `toml:"shell"`
	OptimizeScript string `toml:"optimize_script"`
	ConvertScript  string `toml:"convert_script"`
	MergeScript    string `toml:"merge_script"`
}

// Optimize holds defaults for glyph optimization.
type Optimize struct {
	Simplify float64 `toml:"simplify"`
}

// Convert holds defaults for format conversion.
type Convert struct {
	Format string `toml:"format"`
}

// Merge holds defaults for SVG font assembly.
type Merge struct {
	FontName   string `toml:"font_name"`
	OutputName string `toml:"output_name"`
}

// Output controls how engine artifacts are published.
type Output struct {
	Overwrite bool `toml:"overwrite"`
}

// Console controls the console encoding applied for the lifetime of the CLI.
type Console struct {
	CodePage         int    `toml:"code_page"`
	FallbackCodePage int    `toml:"fallback_code_page"`
	FallbackEncoding string `toml:"fallback_encoding"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for glyphsmith.
//
// Configuration sections by subsystem:
//   - Paths: install, script, scratch and log directories
//   - Engine: FontForge executable, shell routing, script names
//   - Optimize / Convert / Merge: per-operation defaults
//   - Output: artifact publishing policy
//   - Console: code page and encoding fallback
//   - Logging: log format, level, and retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	Engine   Engine   `toml:"engine"`
	Optimize Optimize `toml:"optimize"`
	Convert  Convert  `toml:"convert"`
	Merge    Merge    `toml:"merge"`
	Output   Output   `toml:"output"`
	Console  Console  `toml:"console"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/glyphsmith/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("glyphsmith.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the scratch and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.TempRoot, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EngineCandidates lists the engine executables to look for, in order.
// An explicit binary is the only candidate; otherwise the install
// directory copy is preferred over a PATH lookup.
func (c *Config) EngineCandidates() []string {
	if binary := strings.TrimSpace(c.Engine.Binary); binary != "" {
		return []string{binary}
	}
	name := engineExecutableName()
	candidates := make([]string, 0, 2)
	if c.Paths.InstallDir != "" {
		candidates = append(candidates, filepath.Join(c.Paths.InstallDir, "bin", name))
	}
	return append(candidates, name)
}

// ScriptPath returns the absolute path of the script implementing operation.
func (c *Config) ScriptPath(operation string) (string, error) {
	var name string
	switch operation {
	case OperationOptimize:
		name = c.Engine.OptimizeScript
	case OperationConvert:
		name = c.Engine.ConvertScript
	case OperationMergeSVG:
		name = c.Engine.MergeScript
	default:
		return "", fmt.Errorf("unknown operation %q", operation)
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	return filepath.Join(c.Paths.ScriptsDir, name), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultInstallDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

func defaultTempRoot() string {
	return filepath.Join(os.TempDir(), tempRootName)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
