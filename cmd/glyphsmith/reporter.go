package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"glyphsmith/internal/fontjob"
	"glyphsmith/internal/services"
	"glyphsmith/internal/session"
)

// reporter prints job outcomes for people. Engine stderr is written exactly
// as captured.
type reporter struct {
	mu       sync.Mutex
	out      io.Writer
	colorize bool
	title    cases.Caser
}

type batchOutcome struct {
	job    fontjob.Job
	result fontjob.Result
	err    error
}

func newReporter(out io.Writer, colorize bool) *reporter {
	return &reporter{out: out, colorize: colorize, title: cases.Title(language.Und)}
}

// EngineLine echoes one line of engine stdout while the engine runs.
func (r *reporter) EngineLine(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "  %s\n", line)
}

func (r *reporter) Banner(op fontjob.Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "glyphsmith %s\n", op)
	fmt.Fprintf(r.out, "Accepted input: %s\n", describeInputs(op))
	fmt.Fprintln(r.out, "Drag a file here or type its path; type exit to quit.")
	fmt.Fprintln(r.out)
}

func (r *reporter) Success(result fontjob.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job := result.Job
	fmt.Fprintln(r.out, renderStatus(statusOK,
		fmt.Sprintf("%s: %s (%s)", job.Operation, job.InputPath, formatElapsed(result.Duration)), r.colorize))
	for _, artifact := range result.Artifacts {
		fmt.Fprintf(r.out, "     %s  %s\n", artifact.Path, formatBytes(artifact.Size))
	}
}

func (r *reporter) Failure(job fontjob.Job, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category := services.Classify(err)
	fmt.Fprintln(r.out, renderStatus(statusError,
		fmt.Sprintf("%s: %s", r.categoryLabel(category), userMessage(err)), r.colorize))

	var engineErr *fontjob.EngineError
	if !errors.As(err, &engineErr) {
		return
	}
	if engineErr.Stderr == "" {
		fmt.Fprintln(r.out, "(the engine wrote nothing to stderr)")
		return
	}
	fmt.Fprintln(r.out, "Engine output:")
	io.WriteString(r.out, engineErr.Stderr)
	if !strings.HasSuffix(engineErr.Stderr, "\n") {
		fmt.Fprintln(r.out)
	}
}

func (r *reporter) BatchSummary(outcomes []batchOutcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([][]string, 0, len(outcomes))
	succeeded := 0
	for _, outcome := range outcomes {
		input := filepath.Base(outcome.job.InputPath)
		if outcome.err != nil {
			rows = append(rows, []string{input, r.categoryLabel(services.Classify(outcome.err)), "", ""})
			continue
		}
		succeeded++
		var outputs []string
		var size int64
		for _, artifact := range outcome.result.Artifacts {
			outputs = append(outputs, filepath.Base(artifact.Path))
			size += artifact.Size
		}
		rows = append(rows, []string{input, "ok", strings.Join(outputs, ", "), formatBytes(size)})
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, renderTable(
		[]string{"Input", "Status", "Output", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	fmt.Fprintf(r.out, "%d succeeded, %d failed\n", succeeded, len(outcomes)-succeeded)
}

func (r *reporter) SessionSummary(summary session.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if summary.Succeeded+summary.Failed == 0 {
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintf(r.out, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
}

func (r *reporter) categoryLabel(category services.Category) string {
	if category == services.CategoryNone {
		category = services.CategoryInternal
	}
	return r.title.String(string(category)) + " error"
}

// userMessage drops the category marker that Wrap puts in front of the
// message; the reporter prints the category itself.
func userMessage(err error) string {
	msg := err.Error()
	for _, marker := range []error{services.ErrUserInput, services.ErrConfiguration, services.ErrEngineExecution, services.ErrCleanup} {
		if rest, ok := strings.CutPrefix(msg, marker.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func describeInputs(op fontjob.Operation) string {
	if op == fontjob.OpMergeSVG {
		return "a directory of SVG glyphs"
	}
	return "." + strings.Join(fontjob.AcceptedInputs(op), ", .")
}
