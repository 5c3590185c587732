package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserInput       = errors.New("input error")
	ErrConfiguration   = errors.New("configuration error")
	ErrEngineExecution = errors.New("engine error")
	ErrCleanup         = errors.New("cleanup error")
)

// Category names a user-facing error class.
type Category string

const (
	CategoryNone          Category = ""
	CategoryUserInput     Category = "input"
	CategoryConfiguration Category = "configuration"
	CategoryEngine        Category = "engine"
	CategoryCleanup       Category = "cleanup"
	CategoryInternal      Category = "internal"
)

// Wrap builds an error message that includes operation context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, operation, step, message string, err error) error {
	detail := buildDetail(operation, step, message)
	if marker == nil {
		marker = ErrEngineExecution
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps an error to the category reported to the user.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrUserInput):
		return CategoryUserInput
	case errors.Is(err, ErrConfiguration):
		return CategoryConfiguration
	case errors.Is(err, ErrEngineExecution):
		return CategoryEngine
	case errors.Is(err, ErrCleanup):
		return CategoryCleanup
	default:
		return CategoryInternal
	}
}

func buildDetail(operation, step, message string) string {
	parts := make([]string, 0, 3)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "operation failure"
	}
	return strings.Join(parts, ": ")
}
