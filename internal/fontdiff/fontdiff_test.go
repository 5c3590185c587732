package fontdiff

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"glyphsmith/internal/services"
)

func mustParse(t *testing.T, data []byte) *Font {
	t.Helper()
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestParseCoverage(t *testing.T) {
	f := mustParse(t, goregular.TTF)
	coverage := f.Coverage()
	if len(coverage) < 100 {
		t.Fatalf("expected a full Latin coverage, got %d code points", len(coverage))
	}
	if !slices.IsSorted(coverage) {
		t.Fatal("expected coverage in ascending order")
	}
	for _, r := range []rune{'A', 'z', '0'} {
		if _, found := slices.BinarySearch(coverage, r); !found {
			t.Fatalf("expected %q in coverage", r)
		}
	}
	if f.Name == "" {
		t.Fatal("expected full font name from the name table")
	}
}

func TestCompareIdenticalFonts(t *testing.T) {
	report := Compare(mustParse(t, goregular.TTF), mustParse(t, goregular.TTF), Options{})
	if !report.Identical() {
		t.Fatalf("expected identical report, got %+v", report)
	}
	if report.OldCount != report.NewCount || report.OldCount == 0 {
		t.Fatalf("unexpected counts old=%d new=%d", report.OldCount, report.NewCount)
	}
	if len(report.Unreadable) != 0 {
		t.Fatalf("unexpected unreadable glyphs: %s", FormatCodepoints(report.Unreadable))
	}
}

func TestCompareDetectsOutlineChanges(t *testing.T) {
	report := Compare(mustParse(t, goregular.TTF), mustParse(t, gobold.TTF), Options{})
	if !report.OutlinesChecked {
		t.Fatal("expected outlines to be checked")
	}
	if !slices.Contains(report.ChangedOutlines, 'A') {
		t.Fatalf("expected U+0041 among changed outlines, got %s", FormatCodepoints(report.ChangedOutlines))
	}
	if report.Identical() {
		t.Fatal("expected differences between regular and bold")
	}
}

func TestCompareDetectsMetricChanges(t *testing.T) {
	report := Compare(mustParse(t, goregular.TTF), mustParse(t, gomono.TTF), Options{SkipOutlines: true})
	if report.OutlinesChecked {
		t.Fatal("expected outline comparison to be skipped")
	}
	if len(report.ChangedOutlines) != 0 {
		t.Fatalf("expected no outline results when skipped, got %d", len(report.ChangedOutlines))
	}
	for _, r := range []rune{'i', 'm'} {
		if !slices.Contains(report.ChangedMetrics, r) {
			t.Fatalf("expected %q among changed metrics", r)
		}
	}
}

func TestMetricsSideBearingFromOutlineBounds(t *testing.T) {
	f := mustParse(t, goregular.TTF)
	idx, err := f.face.GlyphIndex(&f.buf, 'A')
	if err != nil || idx == 0 {
		t.Fatalf("GlyphIndex: %d %v", idx, err)
	}
	ppem := f.unitScale()
	got, err := f.metrics(idx, ppem)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	bounds, advance, err := f.face.GlyphBounds(&f.buf, idx, ppem, font.HintingNone)
	if err != nil {
		t.Fatalf("GlyphBounds: %v", err)
	}
	if got.lsb != bounds.Min.X || got.advance != advance {
		t.Fatalf("metrics = %+v, want lsb %v advance %v", got, bounds.Min.X, advance)
	}

	space, err := f.face.GlyphIndex(&f.buf, ' ')
	if err != nil {
		t.Fatalf("GlyphIndex: %v", err)
	}
	empty, err := f.metrics(space, ppem)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if empty.lsb != 0 || empty.advance == 0 {
		t.Fatalf("space metrics = %+v, want zero lsb and a positive advance", empty)
	}
}

func TestDiffCoverage(t *testing.T) {
	added, removed, shared := diffCoverage(
		[]rune{0x41, 0x42, 0x43, 0x4E00},
		[]rune{0x42, 0x43, 0x44, 0x1F600},
	)
	if diff := cmp.Diff([]rune{0x44, 0x1F600}, added); diff != "" {
		t.Fatalf("added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune{0x41, 0x4E00}, removed); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]rune{0x42, 0x43}, shared); diff != "" {
		t.Fatalf("shared mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCodepoints(t *testing.T) {
	if got := FormatCodepoints(nil); got != "none" {
		t.Fatalf("empty list: got %q", got)
	}
	if got := FormatCodepoints([]rune{0x4E01, 0x41, 0x1F600}); got != "U+0041, U+4E01, U+1F600" {
		t.Fatalf("short list: got %q", got)
	}

	long := make([]rune, 0, 25)
	for r := rune(0x100); r < 0x100+25; r++ {
		long = append(long, r)
	}
	want := "U+0100, U+0101, U+0102, U+0103, U+0104, U+0105, U+0106, U+0107, U+0108, U+0109, " +
		"... (5 more), " +
		"U+010F, U+0110, U+0111, U+0112, U+0113, U+0114, U+0115, U+0116, U+0117, U+0118"
	if got := FormatCodepoints(long); got != want {
		t.Fatalf("long list:\n got %q\nwant %q", got, want)
	}

	exact := long[:20]
	if got := FormatCodepoints(exact); got != joinCodepoints(exact) {
		t.Fatalf("twenty entries should not be elided, got %q", got)
	}
}

func TestLoadRejectsInvalidInput(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "broken.ttf")
	if err := os.WriteFile(garbage, []byte("not a font"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	woff := filepath.Join(dir, "font.woff2")
	if err := os.WriteFile(woff, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"missing", filepath.Join(dir, "missing.ttf")},
		{"extension", woff},
		{"no extension", filepath.Join(dir, "font")},
		{"corrupt", garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, services.ErrUserInput) {
				t.Fatalf("expected user input error, got %v", err)
			}
		})
	}
}

func TestCompareFiles(t *testing.T) {
	dir := t.TempDir()
	oldPath := filepath.Join(dir, "old.ttf")
	newPath := filepath.Join(dir, "new.OTF")
	if err := os.WriteFile(oldPath, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(newPath, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	report, err := CompareFiles(oldPath, newPath, Options{})
	if err != nil {
		t.Fatalf("CompareFiles: %v", err)
	}
	if report.OldPath != oldPath || report.NewPath != newPath {
		t.Fatalf("unexpected paths %q %q", report.OldPath, report.NewPath)
	}
	if !report.Identical() {
		t.Fatalf("expected identical fonts, got %+v", report)
	}
}
