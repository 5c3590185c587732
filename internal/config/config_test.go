package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"glyphsmith/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GLYPHSMITH_ENGINE", "")
	t.Setenv("GLYPHSMITH_SCRIPTS_DIR", "")
	t.Setenv("GLYPHSMITH_TEMP_ROOT", filepath.Join(tempHome, "scratch"))

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "glyphsmith", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Paths.TempRoot != filepath.Join(tempHome, "scratch") {
		t.Fatalf("expected temp root from env, got %q", cfg.Paths.TempRoot)
	}
	if cfg.Paths.InstallDir == "" {
		t.Fatal("expected install dir to default to the executable directory")
	}
	if cfg.Paths.ScriptsDir != filepath.Join(cfg.Paths.InstallDir, "scripts") {
		t.Fatalf("unexpected scripts dir: %q", cfg.Paths.ScriptsDir)
	}
	if cfg.Engine.Shell != config.ShellNone {
		t.Fatalf("unexpected shell: %q", cfg.Engine.Shell)
	}
	if cfg.Optimize.Simplify != 0.5 {
		t.Fatalf("unexpected simplify default: %v", cfg.Optimize.Simplify)
	}
	if cfg.Convert.Format != "woff2" {
		t.Fatalf("unexpected convert format: %q", cfg.Convert.Format)
	}
	if cfg.Merge.FontName != "CustomFont" || cfg.Merge.OutputName != "output_font.svg" {
		t.Fatalf("unexpected merge defaults: %+v", cfg.Merge)
	}
	if !cfg.Output.Overwrite {
		t.Fatal("expected overwrite enabled by default")
	}
	if cfg.Console.CodePage != 65001 || cfg.Console.FallbackCodePage != 936 {
		t.Fatalf("unexpected console defaults: %+v", cfg.Console)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.TempRoot, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "glyphsmith.toml")

	type payload struct {
		Paths struct {
			ScriptsDir string `toml:"scripts_dir"`
			TempRoot   string `toml:"temp_root"`
		} `toml:"paths"`
		Engine struct {
			Binary string `toml:"binary"`
			Shell  string `toml:"shell"`
		} `toml:"engine"`
		Convert struct {
			Format string `toml:"format"`
		} `toml:"convert"`
		Optimize struct {
			Simplify float64 `toml:"simplify"`
		} `toml:"optimize"`
	}
	custom := payload{}
	custom.Paths.ScriptsDir = filepath.Join(tempDir, "scripts")
	custom.Paths.TempRoot = filepath.Join(tempDir, "tmp")
	custom.Engine.Binary = filepath.Join(tempDir, "bin", "fontforge")
	custom.Engine.Shell = " SH "
	custom.Convert.Format = ".OTF"
	custom.Optimize.Simplify = 2.5
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Engine.Shell != config.ShellSh {
		t.Fatalf("expected normalized shell, got %q", cfg.Engine.Shell)
	}
	if cfg.Convert.Format != "otf" {
		t.Fatalf("expected normalized format, got %q", cfg.Convert.Format)
	}
	if cfg.Optimize.Simplify != 2.5 {
		t.Fatalf("expected simplify override, got %v", cfg.Optimize.Simplify)
	}
	candidates := cfg.EngineCandidates()
	if len(candidates) != 1 || candidates[0] != custom.Engine.Binary {
		t.Fatalf("expected explicit engine as sole candidate, got %v", candidates)
	}
	script, err := cfg.ScriptPath(config.OperationConvert)
	if err != nil {
		t.Fatalf("ScriptPath: %v", err)
	}
	if script != filepath.Join(tempDir, "scripts", "convert_font.py") {
		t.Fatalf("unexpected script path %q", script)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"shell", "[engine]\nshell = \"bash\"\n", "engine.shell"},
		{"format", "[convert]\nformat = \"pdf\"\n", "convert.format"},
		{"simplify", "[optimize]\nsimplify = -1.0\n", "optimize.simplify"},
		{"level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"merge output", "[merge]\noutput_name = \"out/font.svg\"\n", "merge.output_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "glyphsmith.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestEngineCandidatesPreferInstallDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.InstallDir = filepath.Join(t.TempDir(), "app")

	candidates := cfg.EngineCandidates()
	if len(candidates) != 2 {
		t.Fatalf("expected two candidates, got %v", candidates)
	}
	name := "fontforge"
	if runtime.GOOS == "windows" {
		name = "fontforge.exe"
	}
	if candidates[0] != filepath.Join(cfg.Paths.InstallDir, "bin", name) {
		t.Fatalf("unexpected first candidate %q", candidates[0])
	}
	if candidates[1] != name {
		t.Fatalf("expected PATH fallback %q, got %q", name, candidates[1])
	}
}

func TestScriptPathRejectsUnknownOperation(t *testing.T) {
	cfg := config.Default()
	if _, err := cfg.ScriptPath("rasterize"); err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Convert.Format != "woff2" {
		t.Fatalf("unexpected sample format %q", cfg.Convert.Format)
	}
}

func TestIsOutputFormat(t *testing.T) {
	for _, format := range []string{"ttf", ".OTF", "woff2", " svg "} {
		if !config.IsOutputFormat(format) {
			t.Fatalf("expected %q to be accepted", format)
		}
	}
	for _, format := range []string{"", "pdf", "sfd"} {
		if config.IsOutputFormat(format) {
			t.Fatalf("expected %q to be rejected", format)
		}
	}
}
