package testsupport

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// sfntVersion is the TrueType header tag; the stub engine never parses past it.
var sfntVersion = []byte{0x00, 0x01, 0x00, 0x00}

// WriteFile writes size bytes to path, creating parent directories. The
// content starts with an sfnt version tag so the file looks like a font to
// anything that sniffs it. A size <= 0 writes the tag alone.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data := append([]byte(nil), sfntVersion...)
	if pad := size - int64(len(data)); pad > 0 {
		data = append(data, bytes.Repeat([]byte{0x42}, int(pad))...)
	}
	if size > 0 {
		data = data[:size]
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteGlyphDir creates dir holding one SVG glyph file per code point, named
// the way merge-svg expects (u4E00.svg), and returns dir.
func WriteGlyphDir(t testing.TB, dir string, codepoints ...rune) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, cp := range codepoints {
		name := filepath.Join(dir, fmt.Sprintf("u%04X.svg", cp))
		body := fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 1000 1000\"><!-- U+%04X --><path d=\"M0 0h500v500H0z\"/></svg>\n", cp)
		if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
			t.Fatalf("write glyph %s: %v", name, err)
		}
	}
	return dir
}
