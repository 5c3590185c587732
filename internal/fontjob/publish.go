package fontjob

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"glyphsmith/internal/fileutil"
	"glyphsmith/internal/logging"
	"glyphsmith/internal/services"
)

// collectArtifacts lists the regular files the engine left in dir, skipping
// the staged input.
func collectArtifacts(dir, staged string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var produced []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == staged {
			continue
		}
		produced = append(produced, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(produced)
	return produced, nil
}

// OutputDir returns where the artifacts of job are published.
func OutputDir(job Job) string {
	if job.Operation == OpConvert && job.Output != "" && filepath.Base(job.Output) != job.Output {
		if abs, err := filepath.Abs(filepath.Dir(job.Output)); err == nil {
			return abs
		}
		return filepath.Dir(job.Output)
	}
	if job.OutputDir != "" {
		if abs, err := filepath.Abs(job.OutputDir); err == nil {
			return abs
		}
		return job.OutputDir
	}
	// merge-svg publishes beside the glyph directory, not inside it.
	return filepath.Dir(filepath.Clean(job.InputPath))
}

// placement records one published artifact and, when overwrite replaced an
// existing file, where that file was parked inside the working directory.
type placement struct {
	src    string
	target string
	backup string
}

// publish moves every produced file into the output directory. A failure
// part way through moves the already published files back and restores any
// file they replaced, so either every artifact lands or none does.
func (p *Processor) publish(job Job, produced []string) ([]Artifact, error) {
	destDir := OutputDir(job)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrUserInput, string(job.Operation), "Publish output",
			fmt.Sprintf("cannot create output directory %s", destDir), err)
	}

	placed := make([]placement, 0, len(produced))
	fail := func(target string, err error) ([]Artifact, error) {
		p.rollback(placed)
		return nil, services.Wrap(services.ErrEngineExecution, string(job.Operation), "Publish output", target, err)
	}
	for _, src := range produced {
		pl := placement{src: src, target: filepath.Join(destDir, filepath.Base(src))}
		if !p.cfg.Output.Overwrite {
			free, err := fileutil.AvailablePath(pl.target)
			if err != nil {
				return fail(pl.target, err)
			}
			pl.target = free
		} else if info, err := os.Lstat(pl.target); err == nil && info.Mode().IsRegular() {
			pl.backup = src + ".replaced"
			if err := fileutil.MoveFile(pl.target, pl.backup); err != nil {
				return fail(pl.target, err)
			}
		}
		if err := fileutil.MoveFile(src, pl.target); err != nil {
			if pl.backup != "" {
				placed = append(placed, placement{target: pl.target, backup: pl.backup})
			}
			return fail(pl.target, err)
		}
		placed = append(placed, pl)
		p.logger.Debug("artifact published",
			logging.Path("path", pl.target),
			logging.Event("artifact_published"),
		)
	}

	artifacts := make([]Artifact, 0, len(placed))
	for _, pl := range placed {
		artifacts = append(artifacts, Artifact{Path: pl.target, Size: fileutil.FileSize(pl.target)})
	}
	return artifacts, nil
}

// rollback undoes placed in reverse order. Failures are logged; the working
// directory still holds whatever could not be moved back.
func (p *Processor) rollback(placed []placement) {
	for i := len(placed) - 1; i >= 0; i-- {
		pl := placed[i]
		if pl.src != "" {
			if err := fileutil.MoveFile(pl.target, pl.src); err != nil {
				p.logger.Warn("artifact rollback failed",
					logging.Path("path", pl.target),
					logging.Error(err),
					logging.Event("artifact_rollback_failed"),
				)
				continue
			}
		}
		if pl.backup != "" {
			if err := fileutil.MoveFile(pl.backup, pl.target); err != nil {
				p.logger.Warn("replaced file restore failed",
					logging.Path("path", pl.target),
					logging.Error(err),
					logging.Event("artifact_rollback_failed"),
				)
			}
		}
	}
}
