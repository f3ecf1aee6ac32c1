package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// LogFilePattern matches the daily log files written by NewFromConfig.
const LogFilePattern = "vidaudit-*.log"

// CleanupOldLogs removes daily log files in dir older than retentionDays.
// A retentionDays value of 0 disables pruning. keep is never removed.
func CleanupOldLogs(logger *slog.Logger, dir string, retentionDays int, keep string) int {
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	matches, err := filepath.Glob(filepath.Join(dir, LogFilePattern))
	if err != nil {
		return 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	removed := 0
	for _, path := range matches {
		if keep != "" && filepath.Clean(path) == filepath.Clean(keep) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			WarnWithContext(logger, "log retention remove failed; file remains", "log_retention_failed",
				Path(path),
				Error(err),
				String(FieldErrorHint, "check file permissions and log_dir ownership"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		if logger != nil {
			logger.Debug("log pruned", Path(path), String(FieldEventType, "log_pruned"))
		}
	}
	return removed
}
