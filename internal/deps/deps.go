// Package deps checks for the external programs and files glyphsmith runs.
package deps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Requirement defines an external dependency glyphsmith relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands containing a path separator are checked in place; bare names are
// resolved against PATH.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := newStatus(req)
		if status.Command == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(status.Command)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", status.Command)
			results = append(results, status)
			continue
		}
		status.Command = resolved
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckFiles reports whether each requirement's Command names a readable
// regular file. Used for engine scripts, which are data to the engine rather
// than executables.
func CheckFiles(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := newStatus(req)
		if status.Command == "" {
			status.Detail = "path not configured"
			results = append(results, status)
			continue
		}
		info, err := os.Stat(status.Command)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			status.Detail = fmt.Sprintf("file %q not found", status.Command)
		case err != nil:
			status.Detail = fmt.Sprintf("stat %q: %v", status.Command, err)
		case info.IsDir():
			status.Detail = fmt.Sprintf("%q is a directory", status.Command)
		default:
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

func newStatus(req Requirement) Status {
	return Status{
		Name:        req.Name,
		Command:     strings.TrimSpace(req.Command),
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
}
