package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidaudit/internal/deps"
	"vidaudit/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show external tool availability and directory checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg)
			var checks []preflight.Result
			for _, r := range preflight.RunAll(cmd.Context(), cfg, "") {
				if isDependencyCheck(r.Name, statuses) {
					continue
				}
				checks = append(checks, r)
			}

			if asJSON {
				return writeJSON(cmd, statusOutput{ConfigPath: ctx.configPath, Dependencies: statuses, Checks: checks})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Configuration", colorize) {
				fmt.Fprintln(out, line)
			}
			configPath := ctx.configPath
			if configPath == "" {
				configPath = "defaults"
			}
			fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configPath, colorize))
			fmt.Fprintln(out, renderStatusLine("History", statusInfo, yesNo(cfg.History.Enabled), colorize))
			fmt.Fprintln(out, renderStatusLine("Workers", statusInfo, formatCount(cfg.Scan.Workers), colorize))
			fmt.Fprintln(out)

			for _, line := range dependencyLines(statuses, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)

			for _, line := range renderSectionHeader("Directories", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range checks {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")
	return cmd
}

type statusOutput struct {
	ConfigPath   string             `json:"config_path,omitempty"`
	Dependencies []deps.Status      `json:"dependencies"`
	Checks       []preflight.Result `json:"checks"`
}

func isDependencyCheck(name string, statuses []deps.Status) bool {
	for _, s := range statuses {
		if s.Name == name {
			return true
		}
	}
	return false
}

// dependencyLines renders one line per tool plus a closing summary.
func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := renderSectionHeader("Dependencies", colorize)
	var missing []string
	for _, s := range statuses {
		switch {
		case s.Available:
			detail := "Ready (" + s.Path + ")"
			if s.Version != "" {
				detail = "Ready (" + s.Version + ")"
			}
			lines = append(lines, renderStatusLine(s.Name, statusOK, detail, colorize))
		case s.Optional:
			lines = append(lines, renderStatusLine(s.Name, statusWarn, s.Detail+"; "+strings.ToLower(s.Description)+" disabled", colorize))
		default:
			missing = append(missing, s.Name)
			lines = append(lines, renderStatusLine(s.Name, statusError, s.Detail, colorize))
		}
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing", statusError, strings.Join(missing, ", "), colorize))
	}
	return lines
}
