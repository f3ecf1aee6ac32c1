package preflight

import (
	"context"

	"vidaudit/internal/config"
	"vidaudit/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable checks for auditing root. An empty root
// skips the library check, which is how "vidaudit status" runs it.
func RunAll(ctx context.Context, cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	if root != "" {
		results = append(results, CheckReadableDirectory("Library", root))
	}

	reportDir := cfg.ReportDirFor(root)
	if reportDir != "" {
		results = append(results, CheckDirectoryAccess("Report directory", reportDir))
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	if cfg.History.Enabled {
		results = append(results, CheckParentWritable("History database", cfg.Paths.HistoryDB))
	}

	for _, status := range CheckSystemDeps(ctx, cfg) {
		if status.Optional {
			continue
		}
		results = append(results, resultFromStatus(status))
	}
	return results
}

// Failures returns the results that did not pass.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

func resultFromStatus(status deps.Status) Result {
	if status.Available {
		detail := status.Path
		if status.Version != "" {
			detail += " (" + status.Version + ")"
		}
		return Result{Name: status.Name, Passed: true, Detail: detail}
	}
	return Result{Name: status.Name, Detail: status.Detail}
}
