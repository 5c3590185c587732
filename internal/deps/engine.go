package deps

import (
	"fmt"
	"strings"
)

// ResolveEngine returns the first candidate that resolves to an executable.
//
// Candidates come ordered from most to least specific: an explicit binary,
// the copy bundled under the install directory, then a bare name for PATH
// lookup. The status always names the candidate that was used, or the full
// list when none resolved.
func ResolveEngine(candidates []string) Status {
	status := Status{
		Name:        "FontForge",
		Description: "Runs the font operation scripts",
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		tried = append(tried, candidate)
		found := CheckBinaries([]Requirement{{Name: status.Name, Command: candidate}})[0]
		if found.Available {
			status.Command = found.Command
			status.Available = true
			return status
		}
	}

	if len(tried) == 0 {
		status.Detail = "engine not configured"
		return status
	}
	status.Command = tried[0]
	status.Detail = fmt.Sprintf("engine not found (tried %s)", strings.Join(tried, ", "))
	return status
}
