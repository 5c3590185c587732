package fontjob

import (
	"time"

	"github.com/google/uuid"

	"glyphsmith/internal/config"
)

// Operation names a font operation.
type Operation string

const (
	OpOptimize Operation = config.OperationOptimize
	OpConvert  Operation = config.OperationConvert
	OpMergeSVG Operation = config.OperationMergeSVG
)

// Job is one request to run an operation on one input.
type Job struct {
	ID        string
	Operation Operation
	// InputPath is a font file, or a directory of SVG glyphs for merge-svg.
	InputPath string
	// OutputDir overrides where artifacts are published.
	OutputDir string

	// Simplify is the optimize outline simplification factor.
	Simplify float64
	// Format is the convert target format without a leading dot.
	Format string
	// Output is the convert target file or the merge-svg font file name.
	Output     string
	FamilyName string
	Version    string
	// FontName is the merge-svg font family name.
	FontName string
}

// Artifact is a file the engine produced, after publishing.
type Artifact struct {
	Path string
	Size int64
}

// Result describes a successful job.
type Result struct {
	Job            Job
	Artifacts      []Artifact
	InputSize      int64
	EngineDuration time.Duration
	Duration       time.Duration
}

// NewJob returns a job for op on input with option defaults taken from cfg.
func NewJob(cfg *config.Config, op Operation, input string) Job {
	job := Job{
		ID:        uuid.NewString(),
		Operation: op,
		InputPath: input,
	}
	if cfg == nil {
		return job
	}
	switch op {
	case OpOptimize:
		job.Simplify = cfg.Optimize.Simplify
	case OpConvert:
		job.Format = cfg.Convert.Format
	case OpMergeSVG:
		job.FontName = cfg.Merge.FontName
		job.Output = cfg.Merge.OutputName
	}
	return job
}
