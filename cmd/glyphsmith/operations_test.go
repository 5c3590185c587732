package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"glyphsmith/internal/config"
	"glyphsmith/internal/testsupport"
)

func TestOptimizeBatchPublishesNextToInput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "My Font (v2) & Co.ttf")

	stdout, _, err := runCLI(t, env, "", "optimize", input)
	if err != nil {
		t.Fatalf("optimize: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "[OK] optimize: "+input)
	requireContains(t, stdout, "optimized ")
	requireNotContains(t, stdout, "succeeded,")
	requireFile(t, filepath.Join(filepath.Dir(input), "My Font (v2) & Co_merge_glyphs.ttf"))
	requireNoJobDirs(t, env.cfg)
}

func TestOptimizeOutputDirFlag(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "Sans.otf")
	outDir := filepath.Join(env.baseDir, "out")

	stdout, _, err := runCLI(t, env, "", "optimize", "--simplify", "1.5", "--output-dir", outDir, input)
	if err != nil {
		t.Fatalf("optimize: %v\n%s", err, stdout)
	}
	requireFile(t, filepath.Join(outDir, "Sans_merge_glyphs.otf"))
}

func TestOptimizeRejectsInvalidSimplify(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "Sans.ttf")

	stdout, _, err := runCLI(t, env, "", "optimize", "--simplify", "-2", input)
	if err == nil {
		t.Fatal("expected failure for negative simplify factor")
	}
	requireContains(t, stdout, "[ERROR] Input error:")
	requireContains(t, stdout, "simplify factor must be a positive number")
}

func TestConvertEngineFailureShowsStderrVerbatim(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithStubEngine(),
		testsupport.WithScript(config.OperationConvert, testsupport.FailingScript),
	)
	input := env.writeInput(t, "font.ttf")

	stdout, _, err := runCLI(t, env, "", "convert", "--format", "woff2", input)
	if err == nil {
		t.Fatal("expected engine failure")
	}
	requireContains(t, err.Error(), "1 of 1 convert jobs failed")
	requireContains(t, stdout, "[ERROR] Engine error: convert failed: engine exited with code 1")
	requireContains(t, stdout, "Traceback (most recent call last):\n  File \"script.py\", line 12\nfontforge.error: Glyph U+4E00 has an open contour\n")
	requireNoJobDirs(t, env.cfg)
}

func TestConvertOutputImpliesFormat(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "font.ttf")
	target := filepath.Join(env.baseDir, "dist", "web font.woff")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	stdout, _, err := runCLI(t, env, "", "convert", "--output", target, "--family-name", "Demo Sans", input)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, stdout)
	}
	requireFile(t, target)
	requireContains(t, stdout, target)
}

func TestConvertOutputRequiresSingleInput(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	a := env.writeInput(t, "a.ttf")
	b := env.writeInput(t, "b.ttf")

	_, _, err := runCLI(t, env, "", "convert", "--output", filepath.Join(env.baseDir, "x.woff"), a, b)
	if err == nil {
		t.Fatal("expected --output with two inputs to fail")
	}
	requireContains(t, err.Error(), "--output accepts a single input font")
}

func TestBatchSummaryCountsFailures(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	good := env.writeInput(t, "good.ttf")
	bad := env.writeInput(t, "notes.txt")

	stdout, _, err := runCLI(t, env, "", "optimize", good, bad, filepath.Join(env.baseDir, "missing.ttf"))
	if err == nil {
		t.Fatal("expected batch failure")
	}
	requireContains(t, err.Error(), "2 of 3 optimize jobs failed")
	requireContains(t, stdout, "unsupported file type .txt")
	requireContains(t, stdout, "good_merge_glyphs.ttf")
	requireContains(t, stdout, "Input error")
	requireContains(t, stdout, "1 succeeded, 2 failed")
}

func TestMissingEngineIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Engine.Binary = filepath.Join(env.baseDir, "nowhere", "fontforge")
	writeTestConfig(t, env.configPath, env.cfg)
	input := env.writeInput(t, "font.ttf")

	stdout, _, err := runCLI(t, env, "", "optimize", input)
	if err == nil {
		t.Fatal("expected configuration failure")
	}
	requireContains(t, stdout, "[ERROR] Configuration error:")
	requireNoJobDirs(t, env.cfg)
}

func TestMergeSVGBatchWritesBesideDirectory(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	glyphs := filepath.Join(env.baseDir, "glyphs")
	testsupport.WriteGlyphDir(t, glyphs, 0x4E00, 0x4E01)
	testsupport.WriteFile(t, filepath.Join(glyphs, "readme.md"), 16)

	stdout, _, err := runCLI(t, env, "", "merge-svg", "--font-name", "Demo", "--output", "demo.svg", glyphs)
	if err != nil {
		t.Fatalf("merge-svg: %v\n%s", err, stdout)
	}
	target := filepath.Join(env.baseDir, "demo.svg")
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read merged font: %v", err)
	}
	if !strings.Contains(string(data), `id="Demo"`) {
		t.Fatalf("unexpected merged font %q", data)
	}
}

func TestInteractiveSessionLoopsUntilExit(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "Drag Me (1).ttf")

	stdin := strings.Join([]string{
		`"` + input + `"`,
		filepath.Join(env.baseDir, "missing.ttf"),
		"",
		"EXIT",
		input,
	}, "\n") + "\n"

	stdout, _, err := runCLI(t, env, stdin, "optimize")
	if err != nil {
		t.Fatalf("interactive optimize: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "Accepted input: .ttf")
	requireContains(t, stdout, "[OK] optimize: "+input)
	requireContains(t, stdout, "does not exist")
	requireContains(t, stdout, "1 succeeded, 2 failed")
	if got := strings.Count(stdout, "[OK]"); got != 1 {
		t.Fatalf("expected processing to stop at exit, got %d successes", got)
	}
	requireNoJobDirs(t, env.cfg)
}

func TestInteractiveSessionEndsOnEOF(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())

	stdout, _, err := runCLI(t, env, "", "convert")
	if err != nil {
		t.Fatalf("expected clean exit on end of input, got %v", err)
	}
	requireContains(t, stdout, "Path to process (convert), or exit:")
}

func TestLogLevelFlagIsValidated(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env, "", "--log-level", "loud", "doctor")
	if err == nil {
		t.Fatal("expected invalid log level to fail")
	}
	requireContains(t, err.Error(), "logging.level")
}

func TestLogFileIsWritten(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubEngine())
	input := env.writeInput(t, "font.ttf")

	if _, _, err := runCLI(t, env, "", "--log-level", "debug", "optimize", input); err != nil {
		t.Fatalf("optimize: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.LogDir, "glyphsmith.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	requireContains(t, string(data), "job completed")
	requireContains(t, string(data), "engine arguments")
}

func TestConvertPassesMetadataFlagsToEngine(t *testing.T) {
	env := setupCLITestEnv(t,
		testsupport.WithStubEngine(),
		testsupport.WithScript(config.OperationConvert, testsupport.ArgvScript),
	)
	argvLog := filepath.Join(env.baseDir, "argv.log")
	t.Setenv("ARGV_LOG", argvLog)
	input := env.writeInput(t, "Tom & Jerry (Bold).otf")

	stdout, _, err := runCLI(t, env, "", "convert", "-f", "ttf", "--family-name", "Tom & Jerry", "--font-version", "2.0 beta", input)
	if err != nil {
		t.Fatalf("convert: %v\n%s", err, stdout)
	}
	data, err := os.ReadFile(argvLog)
	if err != nil {
		t.Fatalf("read argv log: %v", err)
	}
	args := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	want := []string{"-o", "-f", "ttf", "--family-name", "Tom & Jerry", "--version", "2.0 beta"}
	if len(args) != 1+len(want)+1 {
		t.Fatalf("unexpected argument count %d: %q", len(args), args)
	}
	if filepath.Base(args[0]) != "Tom & Jerry (Bold).otf" {
		t.Fatalf("expected staged input first, got %q", args[0])
	}
	if filepath.Base(args[2]) != "Tom & Jerry (Bold).ttf" {
		t.Fatalf("unexpected output argument %q", args[2])
	}
	got := append([]string{args[1]}, args[3:]...)
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected flags %q, want %q", got, want)
	}
	requireFile(t, filepath.Join(filepath.Dir(input), "Tom & Jerry (Bold).ttf"))
}
