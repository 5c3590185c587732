package preflight

import (
	"fmt"

	"glyphsmith/internal/config"
	"glyphsmith/internal/deps"
	"glyphsmith/internal/services"
)

// Tools is the resolved engine executable and script for one operation.
type Tools struct {
	Engine string
	Script string
}

// ResolveTools locates the engine and the script for operation. Any failure
// is a configuration error; nothing on disk is created.
func ResolveTools(cfg *config.Config, operation string) (Tools, error) {
	if cfg == nil {
		return Tools{}, services.Wrap(services.ErrConfiguration, operation, "Resolve engine", "configuration not loaded", nil)
	}

	engine := deps.ResolveEngine(cfg.EngineCandidates())
	if !engine.Available {
		return Tools{}, services.Wrap(services.ErrConfiguration, operation, "Resolve engine", engine.Detail, nil)
	}

	script, err := cfg.ScriptPath(operation)
	if err != nil {
		return Tools{}, services.Wrap(services.ErrConfiguration, operation, "Resolve script", "", err)
	}
	status := deps.CheckFiles([]deps.Requirement{{Name: "script", Command: script}})[0]
	if !status.Available {
		return Tools{}, services.Wrap(services.ErrConfiguration, operation, "Resolve script",
			fmt.Sprintf("operation script missing: %s", status.Detail), nil)
	}

	return Tools{Engine: engine.Command, Script: script}, nil
}
