package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vidaudit/internal/config"
)

// Requirement defines an external tool vidaudit relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs, when set, are passed to Command to read its version.
	VersionArgs []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Path        string `json:"path,omitempty"`
	Version     string `json:"version,omitempty"`
	Detail      string `json:"detail,omitempty"`
}

// versionTimeout bounds each version probe.
const versionTimeout = 5 * time.Second

// Requirements lists the tools the configuration needs. exiftool is
// optional and only listed when ISO lookups are enabled.
func Requirements(cfg *config.Config) []Requirement {
	reqs := []Requirement{{
		Name:        "ffprobe",
		Command:     cfg.Probe.FFprobeBinary,
		Description: "Reads stream metadata for classification",
		VersionArgs: []string{"-version"},
	}}
	if cfg.Probe.ExiftoolEnabled {
		reqs = append(reqs, Requirement{
			Name:        "exiftool",
			Command:     cfg.Probe.ExiftoolBinary,
			Description: "Reads ISO sensitivity for denoise advisories",
			Optional:    true,
			VersionArgs: []string{"-ver"},
		})
	}
	return reqs
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(ctx context.Context, requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = resolved
		if len(req.VersionArgs) > 0 {
			status.Version = readVersion(ctx, resolved, req.VersionArgs)
		}
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the required dependencies that are unavailable.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s)
		}
	}
	return missing
}

// readVersion returns the first output line of the version command, or ""
// when it fails.
func readVersion(ctx context.Context, binary string, args []string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, binary, args...).Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(line)
}
