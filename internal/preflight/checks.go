package preflight

import (
	"fmt"
	"os"

	"glyphsmith/internal/config"
	"glyphsmith/internal/deps"
)

var scriptOperations = []struct {
	name      string
	operation string
}{
	{"Optimize script", config.OperationOptimize},
	{"Convert script", config.OperationConvert},
	{"Merge script", config.OperationMergeSVG},
}

// CheckEngine resolves the engine executable from the configured candidates.
func CheckEngine(cfg *config.Config) Result {
	status := deps.ResolveEngine(cfg.EngineCandidates())
	if !status.Available {
		return Result{Name: status.Name, Detail: status.Detail}
	}
	return Result{Name: status.Name, Passed: true, Detail: status.Command}
}

// CheckScripts verifies that every operation script is present.
func CheckScripts(cfg *config.Config) []Result {
	requirements := make([]deps.Requirement, 0, len(scriptOperations))
	for _, op := range scriptOperations {
		path, err := cfg.ScriptPath(op.operation)
		if err != nil {
			path = ""
		}
		requirements = append(requirements, deps.Requirement{Name: op.name, Command: path})
	}

	statuses := deps.CheckFiles(requirements)
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		if status.Available {
			results = append(results, Result{Name: status.Name, Passed: true, Detail: status.Command})
			continue
		}
		results = append(results, Result{Name: status.Name, Detail: status.Detail})
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkAccess(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
