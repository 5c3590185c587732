package testsupport

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"glyphsmith/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The install directory is empty until WithStubEngine populates it.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InstallDir = filepath.Join(base, "app")
	cfgVal.Paths.ScriptsDir = filepath.Join(base, "app", "scripts")
	cfgVal.Paths.TempRoot = filepath.Join(base, "tmp")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubEngine installs a shell stand-in for FontForge under the install
// directory together with shell versions of the three operation scripts.
// The stub accepts "-script FILE ARGS..." and runs FILE with sh.
func WithStubEngine() ConfigOption {
	return func(b *configBuilder) {
		RequirePOSIX(b.t)
		binDir := filepath.Join(b.cfg.Paths.InstallDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(binDir, "fontforge"), []byte(EngineStub), 0o755); err != nil {
			b.t.Fatalf("write engine stub: %v", err)
		}
		for operation, body := range map[string]string{
			config.OperationOptimize: OptimizeScript,
			config.OperationConvert:  ConvertScript,
			config.OperationMergeSVG: MergeScript,
		} {
			writeScript(b, operation, body)
		}
	}
}

// WithScript replaces the script for operation with body.
func WithScript(operation, body string) ConfigOption {
	return func(b *configBuilder) {
		writeScript(b, operation, body)
	}
}

// WithoutScript removes the script for operation so resolution fails.
func WithoutScript(operation string) ConfigOption {
	return func(b *configBuilder) {
		path, err := b.cfg.ScriptPath(operation)
		if err != nil {
			b.t.Fatalf("script path: %v", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			b.t.Fatalf("remove script: %v", err)
		}
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		RequirePOSIX(b.t)
		binDir := filepath.Join(b.baseDir, "path-bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.TempRoot)
}

// RequirePOSIX skips tests that depend on shell stubs.
func RequirePOSIX(t testing.TB) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs require a POSIX system")
	}
}

func writeScript(b *configBuilder, operation, body string) {
	path, err := b.cfg.ScriptPath(operation)
	if err != nil {
		b.t.Fatalf("script path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		b.t.Fatalf("mkdir scripts dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		b.t.Fatalf("write script %s: %v", operation, err)
	}
}
