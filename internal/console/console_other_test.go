//go:build !windows

package console

import (
	"bytes"
	"testing"

	"glyphsmith/internal/config"
)

func TestApplyUTF8LocaleIsPassthrough(t *testing.T) {
	var buf bytes.Buffer
	session, err := apply(config.Default().Console, &buf, env(map[string]string{"LANG": "en_US.UTF-8"}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if session.Writer != &buf {
		t.Fatal("expected output to pass through unchanged")
	}
	if err := session.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
}

func TestApplyLegacyLocaleTranscodes(t *testing.T) {
	var buf bytes.Buffer
	session, err := apply(config.Default().Console, &buf, env(map[string]string{"LANG": "zh_CN.GBK"}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := session.Writer.Write([]byte("字")); err != nil {
		t.Fatal(err)
	}
	if err := session.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xD7, 0xD6}) {
		t.Fatalf("unexpected bytes % X", buf.Bytes())
	}
}

func TestApplyUnknownLocaleUsesFallback(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default().Console
	session, err := apply(cfg, &buf, env(map[string]string{"LANG": "zh_CN.nonsense-cs"}))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if session.Encoding != cfg.FallbackEncoding {
		t.Fatalf("expected fallback %q, got %q", cfg.FallbackEncoding, session.Encoding)
	}

	cfg.FallbackEncoding = ""
	session, err = apply(cfg, &buf, env(map[string]string{"LANG": "zh_CN.nonsense-cs"}))
	if err == nil {
		t.Fatal("expected error without fallback")
	}
	if session == nil || session.Writer != &buf {
		t.Fatal("expected usable passthrough session on error")
	}
}
