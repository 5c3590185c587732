package fontjob

import (
	"fmt"

	"glyphsmith/internal/services"
)

// EngineError reports an engine run that failed after writing to stderr:
// a non-zero exit, a crash, or a run cut short. Stderr is kept byte for byte
// so it can be shown to the user unaltered.
type EngineError struct {
	Operation Operation
	Input     string
	ExitCode  int
	Stderr    string
	// Err is set when the run itself failed rather than exiting.
	Err error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s failed: %v", services.ErrEngineExecution, e.Operation, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: engine exited with code %d", services.ErrEngineExecution, e.Operation, e.ExitCode)
}

// Unwrap classifies the failure as an engine execution error and exposes
// the underlying run error, if any.
func (e *EngineError) Unwrap() []error {
	if e.Err != nil {
		return []error{services.ErrEngineExecution, e.Err}
	}
	return []error{services.ErrEngineExecution}
}
