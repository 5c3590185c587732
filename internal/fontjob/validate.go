package fontjob

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"glyphsmith/internal/config"
	"glyphsmith/internal/services"
)

var (
	optimizeInputs = []string{"ttf", "otf"}
	convertInputs  = []string{"ttf", "otf", "woff", "woff2", "svg", "sfd"}
)

// glyphFilePattern matches SVG glyph files named after their code point,
// optionally prefixed with "u": 4E00.svg, u1F600.svg.
var glyphFilePattern = regexp.MustCompile(`^[uU]?[0-9A-Fa-f]{4,6}\.[sS][vV][gG]$`)

// AcceptedInputs returns the input extensions op accepts. merge-svg takes a
// directory and has none.
func AcceptedInputs(op Operation) []string {
	switch op {
	case OpOptimize:
		return append([]string(nil), optimizeInputs...)
	case OpConvert:
		return append([]string(nil), convertInputs...)
	default:
		return nil
	}
}

// IsGlyphFile reports whether name is an SVG glyph file merge-svg imports.
func IsGlyphFile(name string) bool {
	return glyphFilePattern.MatchString(name)
}

func extensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func userError(op Operation, step, message string, err error) error {
	return services.Wrap(services.ErrUserInput, string(op), step, message, err)
}

// checkInput covers the first two preconditions: a path was given and it
// exists with the right kind for the operation.
func checkInput(job Job) (os.FileInfo, error) {
	if strings.TrimSpace(job.InputPath) == "" {
		return nil, userError(job.Operation, "Validate input", "no input path provided", nil)
	}
	info, err := os.Stat(job.InputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, userError(job.Operation, "Validate input", fmt.Sprintf("path does not exist: %s", job.InputPath), nil)
		}
		return nil, userError(job.Operation, "Validate input", fmt.Sprintf("cannot access %s", job.InputPath), err)
	}
	if job.Operation == OpMergeSVG {
		if !info.IsDir() {
			return nil, userError(job.Operation, "Validate input", fmt.Sprintf("expected a directory of SVG glyphs: %s", job.InputPath), nil)
		}
		return info, nil
	}
	if info.IsDir() {
		return nil, userError(job.Operation, "Validate input", fmt.Sprintf("expected a font file, got a directory: %s", job.InputPath), nil)
	}
	return info, nil
}

// checkOptions covers the last precondition: extension and option values.
func checkOptions(job Job) error {
	switch job.Operation {
	case OpOptimize:
		if ext := extensionOf(job.InputPath); !slices.Contains(optimizeInputs, ext) {
			return unsupportedExtension(job, optimizeInputs)
		}
		if job.Simplify <= 0 || math.IsNaN(job.Simplify) || math.IsInf(job.Simplify, 0) {
			return userError(job.Operation, "Validate options", fmt.Sprintf("simplify factor must be a positive number (got %v)", job.Simplify), nil)
		}
	case OpConvert:
		ext := extensionOf(job.InputPath)
		if !slices.Contains(convertInputs, ext) {
			return unsupportedExtension(job, convertInputs)
		}
		if !config.IsOutputFormat(job.Format) {
			return userError(job.Operation, "Validate options",
				fmt.Sprintf("unsupported output format %q (accepted: %s)", job.Format, strings.Join(config.OutputFormats, ", ")), nil)
		}
		// Re-saving in the same format needs a distinct file name, since the
		// engine writes beside the staged input.
		if ext == job.Format && (job.Output == "" || filepath.Base(job.Output) == filepath.Base(job.InputPath)) {
			return userError(job.Operation, "Validate options",
				fmt.Sprintf("input is already %s; pass an output with a different file name", job.Format), nil)
		}
		if job.Output != "" && extensionOf(job.Output) != job.Format {
			return userError(job.Operation, "Validate options",
				fmt.Sprintf("output %s does not end in .%s", filepath.Base(job.Output), job.Format), nil)
		}
	case OpMergeSVG:
		if strings.TrimSpace(job.FontName) == "" {
			return userError(job.Operation, "Validate options", "font name must not be empty", nil)
		}
		name := strings.TrimSpace(job.Output)
		if name == "" || strings.ContainsAny(name, `/\`) {
			return userError(job.Operation, "Validate options", fmt.Sprintf("output must be a file name (got %q)", job.Output), nil)
		}
		if !config.IsOutputFormat(extensionOf(name)) {
			return userError(job.Operation, "Validate options",
				fmt.Sprintf("output %s must end in one of .%s", name, strings.Join(config.OutputFormats, ", .")), nil)
		}
		count, err := countGlyphFiles(job.InputPath)
		if err != nil {
			return userError(job.Operation, "Validate input", fmt.Sprintf("cannot read %s", job.InputPath), err)
		}
		if count == 0 {
			return userError(job.Operation, "Validate input",
				fmt.Sprintf("no SVG glyph files (like u4E00.svg) in %s", job.InputPath), nil)
		}
	default:
		return userError(job.Operation, "Validate options", fmt.Sprintf("unknown operation %q", job.Operation), nil)
	}
	return nil
}

func unsupportedExtension(job Job, accepted []string) error {
	kind := "." + extensionOf(job.InputPath)
	if kind == "." {
		kind = "(no extension)"
	}
	return userError(job.Operation, "Validate input",
		fmt.Sprintf("unsupported file type %s (accepted: .%s)", kind, strings.Join(accepted, ", .")), nil)
}

func countGlyphFiles(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, entry := range entries {
		if entry.Type().IsRegular() && IsGlyphFile(entry.Name()) {
			count++
		}
	}
	return count, nil
}
