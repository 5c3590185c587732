package fontdiff

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"glyphsmith/internal/services"
)

// Extensions lists the font containers the comparison understands.
var Extensions = []string{".ttf", ".otf"}

const (
	surrogateLow  = 0xD800
	surrogateHigh = 0xDFFF
)

// Font is a parsed font together with its cmap coverage.
type Font struct {
	Path     string
	Name     string
	face     *sfnt.Font
	buf      sfnt.Buffer
	glyphs   map[rune]sfnt.GlyphIndex
	coverage []rune
}

// Load reads and parses a font file.
func Load(path string) (*Font, error) {
	if strings.TrimSpace(path) == "" {
		return nil, services.Wrap(services.ErrUserInput, "diff", "load", "font path is empty", nil)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(Extensions, ext) {
		label := ext
		if label == "" {
			label = "(no extension)"
		}
		return nil, services.Wrap(services.ErrUserInput, "diff", "load",
			fmt.Sprintf("unsupported font type %s for %s; expected %s", label, path, strings.Join(Extensions, ", ")), nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrUserInput, "diff", "load", fmt.Sprintf("font %s does not exist", path), nil)
		}
		return nil, services.Wrap(services.ErrUserInput, "diff", "load", "read "+path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, services.Wrap(services.ErrUserInput, "diff", "parse", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse builds a Font from raw sfnt data.
func Parse(data []byte) (*Font, error) {
	face, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	f := &Font{face: face, glyphs: make(map[rune]sfnt.GlyphIndex)}
	if name, err := face.Name(&f.buf, sfnt.NameIDFull); err == nil {
		f.Name = name
	}
	for r := rune(0); r <= utf8.MaxRune; r++ {
		if r == surrogateLow {
			r = surrogateHigh
			continue
		}
		idx, err := face.GlyphIndex(&f.buf, r)
		if err != nil || idx == 0 {
			continue
		}
		f.glyphs[r] = idx
		f.coverage = append(f.coverage, r)
	}
	return f, nil
}

// Coverage returns the mapped code points in ascending order.
func (f *Font) Coverage() []rune {
	return slices.Clone(f.coverage)
}

// Options tunes a comparison.
type Options struct {
	// SkipOutlines disables the per-glyph outline comparison.
	SkipOutlines bool
}

// Report is the outcome of comparing an old font with a new one.
type Report struct {
	OldPath         string
	NewPath         string
	OldCount        int
	NewCount        int
	Added           []rune
	Removed         []rune
	ChangedOutlines []rune
	ChangedMetrics  []rune
	// Unreadable holds shared code points whose glyph could not be decoded
	// in either font.
	Unreadable      []rune
	OutlinesChecked bool
}

// Identical reports whether no coverage, outline, or metric difference was found.
func (r Report) Identical() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 &&
		len(r.ChangedOutlines) == 0 && len(r.ChangedMetrics) == 0
}

// CompareFiles loads both fonts and compares them.
func CompareFiles(oldPath, newPath string, opts Options) (Report, error) {
	oldFont, err := Load(oldPath)
	if err != nil {
		return Report{}, err
	}
	newFont, err := Load(newPath)
	if err != nil {
		return Report{}, err
	}
	return Compare(oldFont, newFont, opts), nil
}

// Compare diffs the coverage of two fonts and inspects every shared code point.
func Compare(oldFont, newFont *Font, opts Options) Report {
	report := Report{
		OldPath:         oldFont.Path,
		NewPath:         newFont.Path,
		OldCount:        len(oldFont.coverage),
		NewCount:        len(newFont.coverage),
		OutlinesChecked: !opts.SkipOutlines,
	}
	var shared []rune
	report.Added, report.Removed, shared = diffCoverage(oldFont.coverage, newFont.coverage)

	oldPPEM := oldFont.unitScale()
	newPPEM := newFont.unitScale()
	for _, r := range shared {
		oldIdx, newIdx := oldFont.glyphs[r], newFont.glyphs[r]

		oldMetrics, oldErr := oldFont.metrics(oldIdx, oldPPEM)
		newMetrics, newErr := newFont.metrics(newIdx, newPPEM)
		if oldErr != nil || newErr != nil {
			report.Unreadable = append(report.Unreadable, r)
			continue
		}
		if oldMetrics != newMetrics {
			report.ChangedMetrics = append(report.ChangedMetrics, r)
		}

		if opts.SkipOutlines {
			continue
		}
		changed, err := outlinesDiffer(oldFont, oldIdx, oldPPEM, newFont, newIdx, newPPEM)
		if err != nil {
			report.Unreadable = append(report.Unreadable, r)
			continue
		}
		if changed {
			report.ChangedOutlines = append(report.ChangedOutlines, r)
		}
	}
	return report
}

// diffCoverage splits two ascending code point lists into added, removed,
// and shared sets.
func diffCoverage(oldSet, newSet []rune) (added, removed, shared []rune) {
	i, j := 0, 0
	for i < len(oldSet) && j < len(newSet) {
		switch {
		case oldSet[i] == newSet[j]:
			shared = append(shared, oldSet[i])
			i++
			j++
		case oldSet[i] < newSet[j]:
			removed = append(removed, oldSet[i])
			i++
		default:
			added = append(added, newSet[j])
			j++
		}
	}
	removed = append(removed, oldSet[i:]...)
	added = append(added, newSet[j:]...)
	return added, removed, shared
}

// hmetrics holds the horizontal metrics compared per glyph. lsb is the left
// edge of the outline bounds rather than the hmtx entry, which sfnt does not
// expose. The two agree for fonts FontForge writes; a font whose hmtx lsb
// drifts from its outline xMin is not reported.
type hmetrics struct {
	advance fixed.Int26_6
	lsb     fixed.Int26_6
}

// unitScale returns the ppem at which one pixel equals one font unit.
func (f *Font) unitScale() fixed.Int26_6 {
	return fixed.I(int(f.face.UnitsPerEm()))
}

func (f *Font) metrics(idx sfnt.GlyphIndex, ppem fixed.Int26_6) (hmetrics, error) {
	bounds, advance, err := f.face.GlyphBounds(&f.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return hmetrics{}, err
	}
	return hmetrics{advance: advance, lsb: bounds.Min.X}, nil
}

// outlinesDiffer compares segment lists in font units. Segments returned by
// LoadGlyph alias the font's buffer, so each font keeps its own.
func outlinesDiffer(oldFont *Font, oldIdx sfnt.GlyphIndex, oldPPEM fixed.Int26_6, newFont *Font, newIdx sfnt.GlyphIndex, newPPEM fixed.Int26_6) (bool, error) {
	oldSegs, err := oldFont.face.LoadGlyph(&oldFont.buf, oldIdx, oldPPEM, nil)
	if err != nil {
		return false, err
	}
	newSegs, err := newFont.face.LoadGlyph(&newFont.buf, newIdx, newPPEM, nil)
	if err != nil {
		return false, err
	}
	return !slices.Equal(oldSegs, newSegs), nil
}

const (
	elideThreshold = 20
	elideKeep      = 10
)

// FormatCodepoints renders code points as U+XXXX, comma separated. Lists
// longer than 20 keep the first and last 10 entries.
func FormatCodepoints(codepoints []rune) string {
	if len(codepoints) == 0 {
		return "none"
	}
	sorted := slices.Clone(codepoints)
	slices.Sort(sorted)
	if len(sorted) <= elideThreshold {
		return joinCodepoints(sorted)
	}
	return fmt.Sprintf("%s, ... (%d more), %s",
		joinCodepoints(sorted[:elideKeep]),
		len(sorted)-elideThreshold,
		joinCodepoints(sorted[len(sorted)-elideKeep:]))
}

func joinCodepoints(codepoints []rune) string {
	parts := make([]string, len(codepoints))
	for i, cp := range codepoints {
		parts[i] = fmt.Sprintf("U+%04X", cp)
	}
	return strings.Join(parts, ", ")
}
