package preflight

import (
	"context"

	"glyphsmith/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckEngine(cfg)}
	results = append(results, CheckScripts(cfg)...)
	results = append(results,
		CheckDirectoryAccess("Temp root", cfg.Paths.TempRoot),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	)
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
