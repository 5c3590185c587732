package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"glyphsmith/internal/fontjob"
	"glyphsmith/internal/logging"
)

// Processor is the part of fontjob.Processor the loop drives.
type Processor interface {
	NewJob(op fontjob.Operation, input string) fontjob.Job
	Prepare(ctx context.Context, job fontjob.Job) (*fontjob.Prepared, error)
	Execute(ctx context.Context, prepared *fontjob.Prepared) (fontjob.Result, error)
}

// Reporter shows job outcomes to the user.
type Reporter interface {
	Success(result fontjob.Result)
	Failure(job fontjob.Job, err error)
}

// Summary counts job outcomes over one session.
type Summary struct {
	Succeeded int
	Failed    int
}

// Options configures a Session.
type Options struct {
	Operation fontjob.Operation
	Prompter  Prompter
	Processor Processor
	Reporter  Reporter
	Logger    *slog.Logger
	// Message is shown at every prompt.
	Message string
	// Configure applies per-session option overrides to each new job.
	Configure func(*fontjob.Job)
	// OnTransition observes every state change.
	OnTransition func(from, to State)
}

// Session is one interactive loop.
type Session struct {
	opts   Options
	logger *slog.Logger
	state  State
}

// New constructs a session.
func New(opts Options) (*Session, error) {
	if opts.Prompter == nil || opts.Processor == nil || opts.Reporter == nil {
		return nil, errors.New("session: prompter, processor and reporter are required")
	}
	if opts.Message == "" {
		opts.Message = fmt.Sprintf("Path to process (%s), or exit:", opts.Operation)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "session"),
		state:  StateAwaitingInput,
	}, nil
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Run drives the loop until an exit keyword, end of input, or ctx ends.
// Job failures are reported and counted, never returned.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	var (
		summary  Summary
		input    string
		job      fontjob.Job
		prepared *fontjob.Prepared
		result   fontjob.Result
		jobErr   error
	)

	for {
		switch s.state {
		case StateAwaitingInput:
			if err := ctx.Err(); err != nil {
				s.transition(StateTerminated)
				return summary, err
			}
			line, err := s.opts.Prompter.Prompt(ctx, s.opts.Message)
			if errors.Is(err, ErrEndOfInput) {
				s.transition(StateTerminated)
				continue
			}
			if err != nil {
				s.transition(StateTerminated)
				if ctx.Err() != nil {
					return summary, ctx.Err()
				}
				return summary, fmt.Errorf("read input: %w", err)
			}
			input = CleanInput(line)
			if IsExitKeyword(input) {
				s.transition(StateTerminated)
				continue
			}
			s.transition(StateValidating)

		case StateValidating:
			job = s.opts.Processor.NewJob(s.opts.Operation, input)
			if s.opts.Configure != nil {
				s.opts.Configure(&job)
			}
			prepared, jobErr = s.opts.Processor.Prepare(ctx, job)
			if jobErr != nil {
				s.transition(StateReporting)
				continue
			}
			job = prepared.Job
			s.transition(StateInvoking)

		case StateInvoking:
			result, jobErr = s.opts.Processor.Execute(ctx, prepared)
			s.transition(StateReporting)

		case StateReporting:
			if jobErr != nil {
				summary.Failed++
				s.opts.Reporter.Failure(job, jobErr)
			} else {
				summary.Succeeded++
				s.opts.Reporter.Success(result)
			}
			prepared, result, jobErr = nil, fontjob.Result{}, nil
			if ctx.Err() != nil {
				s.transition(StateTerminated)
				continue
			}
			s.transition(StateAwaitingInput)

		case StateTerminated:
			s.logger.Info("session ended",
				logging.Int("succeeded", summary.Succeeded),
				logging.Int("failed", summary.Failed),
				logging.Event("session_ended"),
			)
			return summary, ctx.Err()
		}
	}
}

func (s *Session) transition(to State) {
	from := s.state
	if !CanTransition(from, to) {
		// A programming error; keep the loop alive in a known state.
		s.logger.Error("illegal session transition",
			logging.String("from", from.String()),
			logging.String("to", to.String()),
			logging.Event("session_transition_invalid"),
			logging.String(logging.FieldErrorHint, "report this as a bug"),
		)
	}
	s.state = to
	s.logger.Debug("session transition",
		logging.String("from", from.String()),
		logging.String("to", to.String()),
	)
	if s.opts.OnTransition != nil {
		s.opts.OnTransition(from, to)
	}
}
