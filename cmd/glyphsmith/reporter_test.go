package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"glyphsmith/internal/fontjob"
	"glyphsmith/internal/services"
)

func TestReporterFailureWritesStderrUnaltered(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, false)
	stderr := "line one\n\ttabbed  line\r\nunsupported glyph"

	job := fontjob.Job{Operation: fontjob.OpConvert, InputPath: "/fonts/a.ttf"}
	rep.Failure(job, &fontjob.EngineError{Operation: fontjob.OpConvert, Input: job.InputPath, ExitCode: 3, Stderr: stderr})

	out := buf.String()
	requireContains(t, out, "[ERROR] Engine error: convert failed: engine exited with code 3\n")
	requireContains(t, out, "Engine output:\n"+stderr+"\n")
}

func TestReporterFailureWithoutStderr(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, false)
	rep.Failure(fontjob.Job{Operation: fontjob.OpOptimize}, &fontjob.EngineError{Operation: fontjob.OpOptimize, ExitCode: 1})
	requireContains(t, buf.String(), "(the engine wrote nothing to stderr)")
}

func TestReporterCategoryLabels(t *testing.T) {
	rep := newReporter(&bytes.Buffer{}, false)
	tests := []struct {
		err  error
		want string
	}{
		{services.Wrap(services.ErrUserInput, "optimize", "Validate input", "no input path provided", nil), "Input error"},
		{services.Wrap(services.ErrConfiguration, "optimize", "Resolve tools", "engine not found", nil), "Configuration error"},
		{services.Wrap(services.ErrEngineExecution, "convert", "Invoke engine", "", errors.New("exec format error")), "Engine error"},
		{errors.New("boom"), "Internal error"},
	}
	for _, tt := range tests {
		if got := rep.categoryLabel(services.Classify(tt.err)); got != tt.want {
			t.Fatalf("categoryLabel(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestUserMessageDropsMarker(t *testing.T) {
	err := services.Wrap(services.ErrUserInput, "optimize", "Validate input", "no input path provided", nil)
	if got := userMessage(err); got != "optimize: Validate input: no input path provided" {
		t.Fatalf("unexpected message %q", got)
	}
	wrapped := fmt.Errorf("batch: %w", err)
	if got := userMessage(wrapped); !strings.HasPrefix(got, "batch: ") {
		t.Fatalf("expected foreign prefix to be kept, got %q", got)
	}
}

func TestReporterSuccessListsArtifacts(t *testing.T) {
	var buf bytes.Buffer
	rep := newReporter(&buf, false)
	rep.Success(fontjob.Result{
		Job:       fontjob.Job{Operation: fontjob.OpOptimize, InputPath: "/fonts/a.ttf"},
		Artifacts: []fontjob.Artifact{{Path: "/fonts/a_merge_glyphs.ttf", Size: 3 * 1024}},
		Duration:  1500 * time.Millisecond,
	})
	out := buf.String()
	requireContains(t, out, "[OK] optimize: /fonts/a.ttf (1.5s)")
	requireContains(t, out, "/fonts/a_merge_glyphs.ttf  3.00 KiB")
}

func TestRenderStatusColorize(t *testing.T) {
	if got := renderStatus(statusError, "x", true); got != ansiRed+"[ERROR]"+ansiReset+" x" {
		t.Fatalf("unexpected colored status %q", got)
	}
	if got := renderStatus(statusOK, "", false); got != "[OK]" {
		t.Fatalf("unexpected plain status %q", got)
	}
}
