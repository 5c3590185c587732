package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PruneLogs removes files in dir matching pattern whose modification time is
// older than retentionDays. The file named keep (usually the active log) is
// never removed. A retentionDays value of 0 disables pruning.
func PruneLogs(logger *slog.Logger, dir, pattern string, retentionDays int, keep string) []string {
	dir = strings.TrimSpace(dir)
	if retentionDays <= 0 || dir == "" {
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	var removed []string
	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == keep {
			continue
		}
		if pattern != "" {
			if matched, err := filepath.Match(pattern, entry.Name()); err != nil || !matched {
				continue
			}
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		fullPath := filepath.Join(dir, entry.Name())
		if err := os.Remove(fullPath); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				String("path", fullPath),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed = append(removed, fullPath)
		if logger != nil {
			logger.Info("log pruned",
				String("path", fullPath),
				Event("log_pruned"),
			)
		}
	}
	return removed
}
