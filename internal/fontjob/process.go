package fontjob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"glyphsmith/internal/config"
	"glyphsmith/internal/fileutil"
	"glyphsmith/internal/logging"
	"glyphsmith/internal/preflight"
	"glyphsmith/internal/services"
	"glyphsmith/internal/services/fontforge"
	"glyphsmith/internal/workspace"
)

// ToolResolver locates the engine and script for an operation.
type ToolResolver func(operation string) (preflight.Tools, error)

// EngineFactory builds the engine for a resolved executable.
type EngineFactory func(binary string) (fontforge.Engine, error)

// Option configures a Processor.
type Option func(*Processor)

// WithEngine replaces the engine for every job. Tool resolution still runs.
func WithEngine(engine fontforge.Engine) Option {
	return func(p *Processor) {
		if engine != nil {
			p.newEngine = func(string) (fontforge.Engine, error) { return engine, nil }
		}
	}
}

// WithToolResolver overrides engine and script lookup.
func WithToolResolver(resolve ToolResolver) Option {
	return func(p *Processor) {
		if resolve != nil {
			p.resolve = resolve
		}
	}
}

// WithStdout receives engine stdout lines as they are printed.
func WithStdout(fn func(string)) Option {
	return func(p *Processor) {
		p.onStdout = fn
	}
}

// Processor runs jobs one at a time against one configuration.
type Processor struct {
	cfg       *config.Config
	logger    *slog.Logger
	workspace *workspace.Manager
	resolve   ToolResolver
	newEngine EngineFactory
	onStdout  func(string)
}

// NewProcessor constructs a Processor for cfg.
func NewProcessor(cfg *config.Config, logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Processor{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "fontjob"),
		workspace: workspace.NewManager(cfg.Paths.TempRoot, logger),
	}
	p.resolve = func(operation string) (preflight.Tools, error) {
		return preflight.ResolveTools(p.cfg, operation)
	}
	p.newEngine = func(binary string) (fontforge.Engine, error) {
		return fontforge.New(binary, p.cfg.Engine.Shell, fontforge.WithStdout(p.onStdout))
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewJob returns a job for op on input with defaults from the processor config.
func (p *Processor) NewJob(op Operation, input string) Job {
	return NewJob(p.cfg, op, input)
}

// Prepared is a job that passed every precondition and is ready to run.
type Prepared struct {
	Job Job

	tools     preflight.Tools
	engine    fontforge.Engine
	inputInfo os.FileInfo
	start     time.Time
}

// Process validates and runs job. The working directory is removed before
// Process returns, on success and on failure.
func (p *Processor) Process(ctx context.Context, job Job) (Result, error) {
	prepared, err := p.Prepare(ctx, job)
	if err != nil {
		return Result{}, err
	}
	return p.Execute(ctx, prepared)
}

// Prepare runs the preconditions in order and stops at the first failure.
// It never touches the filesystem beyond reading the input.
func (p *Processor) Prepare(ctx context.Context, job Job) (*Prepared, error) {
	start := time.Now()
	job = normalizeJob(job)
	logger := p.jobLogger(ctx, job)

	inputInfo, err := checkInput(job)
	if err != nil {
		return nil, p.fail(logger, job, err)
	}
	tools, err := p.resolve(string(job.Operation))
	if err != nil {
		return nil, p.fail(logger, job, err)
	}
	if err := checkOptions(job); err != nil {
		return nil, p.fail(logger, job, err)
	}

	engine, err := p.newEngine(tools.Engine)
	if err != nil {
		return nil, p.fail(logger, job, services.Wrap(services.ErrConfiguration, string(job.Operation), "Prepare engine", "", err))
	}
	return &Prepared{Job: job, tools: tools, engine: engine, inputInfo: inputInfo, start: start}, nil
}

// Execute runs a prepared job in a fresh working directory and publishes
// what the engine produced.
func (p *Processor) Execute(ctx context.Context, prepared *Prepared) (Result, error) {
	if prepared == nil {
		return Result{}, errors.New("execute: job not prepared")
	}
	job, tools := prepared.Job, prepared.tools
	logger := p.jobLogger(ctx, job)

	dir, err := p.workspace.Create(ctx)
	if err != nil {
		return Result{}, p.fail(logger, job, err)
	}
	defer func() {
		// Cleanup failures are never surfaced; Remove already logs them.
		_ = dir.Remove()
	}()

	args, staged, err := p.stage(job, dir.Path)
	if err != nil {
		return Result{}, p.fail(logger, job, err)
	}

	logger.Info("invoking engine",
		logging.Path("input", job.InputPath),
		logging.Path("engine", tools.Engine),
		logging.Path("script", tools.Script),
		logging.Event("engine_invoke"),
	)
	debugAttrs := []logging.Attr{logging.Any("args", args), logging.Path("dir", dir.Path)}
	if job.Operation == OpOptimize {
		debugAttrs = append(debugAttrs, logging.Float64("simplify", job.Simplify))
	}
	logger.Debug("engine arguments", logging.Args(debugAttrs...)...)

	outcome, err := prepared.engine.Invoke(ctx, fontforge.Invocation{Script: tools.Script, Args: args, Dir: dir.Path})
	if err != nil && outcome.Stderr != "" {
		return Result{}, p.fail(logger, job, &EngineError{
			Operation: job.Operation,
			Input:     job.InputPath,
			ExitCode:  outcome.ExitCode,
			Stderr:    outcome.Stderr,
			Err:       err,
		})
	}
	if err != nil {
		return Result{}, p.fail(logger, job, services.Wrap(services.ErrEngineExecution, string(job.Operation), "Invoke engine", "", err))
	}
	if outcome.ExitCode != 0 {
		return Result{}, p.fail(logger, job, &EngineError{
			Operation: job.Operation,
			Input:     job.InputPath,
			ExitCode:  outcome.ExitCode,
			Stderr:    outcome.Stderr,
		})
	}
	if strings.TrimSpace(outcome.Stderr) != "" {
		logger.Debug("engine stderr on success", logging.String("stderr", outcome.Stderr))
	}

	produced, err := collectArtifacts(dir.Path, staged)
	if err != nil {
		return Result{}, p.fail(logger, job, services.Wrap(services.ErrEngineExecution, string(job.Operation), "Collect output", "", err))
	}
	if len(produced) == 0 {
		return Result{}, p.fail(logger, job, services.Wrap(services.ErrEngineExecution, string(job.Operation), "Collect output", "engine produced no output", nil))
	}

	artifacts, err := p.publish(job, produced)
	if err != nil {
		return Result{}, p.fail(logger, job, err)
	}

	result := Result{
		Job:            job,
		Artifacts:      artifacts,
		EngineDuration: outcome.Duration,
		Duration:       time.Since(prepared.start),
	}
	if !prepared.inputInfo.IsDir() {
		result.InputSize = prepared.inputInfo.Size()
	}
	logger.Info("job completed",
		logging.Int("artifacts", len(artifacts)),
		logging.Int64("input_bytes", result.InputSize),
		logging.Duration("duration", result.Duration),
		logging.Event("job_completed"),
	)
	return result, nil
}

func (p *Processor) jobLogger(ctx context.Context, job Job) *slog.Logger {
	ctx = services.WithJobID(ctx, job.ID)
	ctx = services.WithOperation(ctx, string(job.Operation))
	return logging.WithContext(ctx, p.logger)
}

func (p *Processor) fail(logger *slog.Logger, job Job, err error) error {
	category := services.Classify(err)
	attrs := []logging.Attr{
		logging.Path("input", job.InputPath),
		logging.String("category", string(category)),
		logging.Error(err),
	}
	switch category {
	case services.CategoryUserInput:
		logger.Info("job rejected", logging.Args(append(attrs, logging.Event("job_rejected"))...)...)
	case services.CategoryConfiguration:
		logging.ErrorWithContext(logger, "job failed", "job_failed", append(attrs,
			logging.String(logging.FieldErrorHint, "run glyphsmith doctor"),
			logging.String(logging.FieldImpact, "no job can run until the engine is installed"),
		)...)
	default:
		var engineErr *EngineError
		if errors.As(err, &engineErr) {
			attrs = append(attrs, logging.Int("exit_code", engineErr.ExitCode), logging.String("stderr", engineErr.Stderr))
		}
		logging.ErrorWithContext(logger, "job failed", "job_failed", attrs...)
	}
	return err
}

// stage copies the input into dir when the engine works on a file and
// returns the engine arguments and the staged file name ("" when nothing
// was staged).
func (p *Processor) stage(job Job, dir string) ([]string, string, error) {
	switch job.Operation {
	case OpMergeSVG:
		return []string{job.InputPath, filepath.Join(dir, job.Output), job.FontName}, "", nil
	}

	name := filepath.Base(job.InputPath)
	staged := filepath.Join(dir, name)
	if err := fileutil.CopyFile(job.InputPath, staged); err != nil {
		return nil, "", services.Wrap(services.ErrEngineExecution, string(job.Operation), "Stage input", "", err)
	}

	switch job.Operation {
	case OpOptimize:
		return []string{staged, "-s", strconv.FormatFloat(job.Simplify, 'f', -1, 64)}, name, nil
	default:
		target := strings.TrimSuffix(name, filepath.Ext(name)) + "." + job.Format
		if job.Output != "" {
			target = filepath.Base(job.Output)
		}
		args := []string{staged, "-o", filepath.Join(dir, target), "-f", job.Format}
		if job.FamilyName != "" {
			args = append(args, "--family-name", job.FamilyName)
		}
		if job.Version != "" {
			args = append(args, "--version", job.Version)
		}
		return args, name, nil
	}
}

func normalizeJob(job Job) Job {
	job.InputPath = strings.TrimSpace(job.InputPath)
	if job.InputPath != "" {
		if abs, err := filepath.Abs(job.InputPath); err == nil {
			job.InputPath = abs
		}
	}
	job.OutputDir = strings.TrimSpace(job.OutputDir)
	job.Format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(job.Format), "."))
	job.Output = strings.TrimSpace(job.Output)
	job.FamilyName = strings.TrimSpace(job.FamilyName)
	job.Version = strings.TrimSpace(job.Version)
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	return job
}

// String renders the job for logs and summaries.
func (j Job) String() string {
	return fmt.Sprintf("%s %s", j.Operation, j.InputPath)
}
