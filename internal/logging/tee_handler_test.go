package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTeeHandlerAllNil(t *testing.T) {
	h := TeeHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Errorf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestTeeHandlerUnwrapsSingleHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)

	if h := TeeHandler(nil, inner, nil); h != inner {
		t.Error("expected single non-nil handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsPerHandlerLevel(t *testing.T) {
	var fileBuf, mirrorBuf bytes.Buffer
	fileLevel := new(slog.LevelVar)
	fileLevel.Set(slog.LevelInfo)
	mirrorLevel := new(slog.LevelVar)
	mirrorLevel.Set(slog.LevelDebug)

	logger := slog.New(TeeHandler(
		newConsoleHandler(&fileBuf, fileLevel, false),
		newConsoleHandler(&mirrorBuf, mirrorLevel, false),
	))

	logger.Debug("engine argv", slog.String("path", "My Font (v2).ttf"))
	logger.Info("job finished")

	if strings.Contains(fileBuf.String(), "engine argv") {
		t.Fatalf("expected debug record filtered from file handler, got %q", fileBuf.String())
	}
	if !strings.Contains(fileBuf.String(), "job finished") {
		t.Fatalf("expected info record in file handler, got %q", fileBuf.String())
	}
	if !strings.Contains(mirrorBuf.String(), `path="My Font (v2).ttf"`) {
		t.Fatalf("expected quoted path in mirror output, got %q", mirrorBuf.String())
	}
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("disk full") }

func TestTeeHandlerKeepsWritingAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	h := TeeHandler(failingHandler{slog.NewTextHandler(io.Discard, nil)}, slog.NewTextHandler(&buf, nil))

	err := slog.New(h).Handler().Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "job completed", 0))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected handler error, got %v", err)
	}
	if !strings.Contains(buf.String(), "job completed") {
		t.Fatalf("expected second handler to receive record, got %q", buf.String())
	}
}

func TestTeeHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := TeeHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))

	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("job_id", "abc")}).WithGroup("engine"))
	logger.Info("invoked", slog.Int("exit_code", 1))

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !bytes.Contains(buf.Bytes(), []byte(`"job_id":"abc"`)) {
			t.Errorf("handler %d missing attr: %s", i, buf.String())
		}
		if !bytes.Contains(buf.Bytes(), []byte(`"engine":{"exit_code":1}`)) {
			t.Errorf("handler %d missing group: %s", i, buf.String())
		}
	}
}
