package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"vidaudit/internal/audit"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Classify individual video files without writing a report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				abs, err := filepath.Abs(arg)
				if err != nil {
					return fmt.Errorf("resolve %s: %w", arg, err)
				}
				paths = append(paths, abs)
			}

			model, err := audit.NewRunnerFromConfig(cfg, logger, nil).ClassifyPaths(cmd.Context(), paths)
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd, model.Rows); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				if len(model.Rows) > 0 {
					fmt.Fprintln(out, filesTable(model, shouldColorize(out)))
				}
				if len(model.Skipped) > 0 {
					fmt.Fprintln(out, skippedTable(model.Skipped))
				}
			}
			if n := len(model.Skipped); n > 0 {
				return fmt.Errorf("%s could not be classified", pluralize(n, "file", "files"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print classifications as JSON")
	return cmd
}
