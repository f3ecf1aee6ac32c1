package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vidaudit/internal/audit"
	"vidaudit/internal/config"
	"vidaudit/internal/logging"
	"vidaudit/internal/preflight"
	"vidaudit/internal/report"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		formats   []string
		asJSON    bool
		showFiles bool
		noHistory bool
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Audit every video under a directory and write the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.loggerFor(cmd)
			if err != nil {
				return err
			}

			root, err := filepath.Abs(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve directory: %w", err)
			}
			wanted, err := resolveFormats(cfg, formats)
			if err != nil {
				return err
			}

			if failed := preflight.Failures(preflight.RunAll(cmd.Context(), cfg, root)); len(failed) > 0 {
				lines := make([]string, 0, len(failed))
				for _, f := range failed {
					lines = append(lines, fmt.Sprintf("%s: %s", f.Name, f.Detail))
				}
				return fmt.Errorf("preflight failed:\n  %s", strings.Join(lines, "\n  "))
			}

			var (
				bar      *progressLine
				progress audit.ProgressFunc
			)
			if !quiet && !asJSON {
				bar, progress = newProgressPrinter(cmd.ErrOrStderr())
			}
			runner := audit.NewRunnerFromConfig(cfg, logger, progress)
			model, err := runner.Run(cmd.Context(), root)
			bar.clear()
			if err != nil {
				return err
			}

			written, err := writeReports(cfg, model, wanted)
			if err != nil {
				logging.ErrorWithContext(logger, "report write failed", "report_write_failed",
					logging.String(logging.FieldBatchID, model.BatchID),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check that the report directory is writable"),
				)
				return err
			}
			if !noHistory {
				recordHistory(cmd, ctx, cfg, logger, model, written)
			}

			if asJSON {
				return writeJSON(cmd, scanOutput{Model: model, Reports: written})
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			writeSummary(out, model, colorize)
			if showFiles && len(model.Rows) > 0 {
				fmt.Fprintln(out, filesTable(model, colorize))
			}
			if len(model.Skipped) > 0 {
				fmt.Fprintln(out, skippedTable(model.Skipped))
			}
			for _, w := range written {
				fmt.Fprintln(out, renderStatusLine(strings.ToUpper(w.Format)+" report", statusOK, w.Path, colorize))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&formats, "format", nil, "Report formats to write (html, json); defaults to report.formats")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report model as JSON instead of the summary")
	cmd.Flags().BoolVar(&showFiles, "files", false, "List every classified file in the summary")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this batch in the history database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the progress line")
	return cmd
}

type scanOutput struct {
	Model   *report.Model   `json:"report"`
	Reports []writtenReport `json:"files"`
}

func resolveFormats(cfg *config.Config, flagValues []string) ([]string, error) {
	if len(flagValues) == 0 {
		return cfg.Report.Formats, nil
	}
	var out []string
	seen := map[string]bool{}
	for _, value := range flagValues {
		format := strings.ToLower(strings.TrimSpace(value))
		switch format {
		case config.FormatHTML, config.FormatJSON:
		default:
			return nil, fmt.Errorf("unsupported report format %q (use html or json)", value)
		}
		if !seen[format] {
			seen[format] = true
			out = append(out, format)
		}
	}
	return out, nil
}

// recordHistory stores the batch and prunes old ones. History problems are
// logged; the report on disk is the primary output and is already written.
func recordHistory(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, logger *slog.Logger, model *report.Model, written []writtenReport) {
	if !cfg.History.Enabled {
		return
	}
	store, err := ctx.openHistory()
	if err != nil {
		logging.WarnWithContext(logger, "history unavailable; batch not recorded", "history_open_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.history_db permissions"),
			logging.String(logging.FieldImpact, "batch missing from vidaudit history"),
		)
		return
	}
	defer store.Close()

	var reportPath string
	if len(written) > 0 {
		reportPath = written[0].Path
	}
	if err := store.SaveBatch(cmd.Context(), *model, reportPath); err != nil {
		logging.WarnWithContext(logger, "history save failed; batch not recorded", "history_save_failed",
			logging.String(logging.FieldBatchID, model.BatchID),
			logging.Error(err),
			logging.String(logging.FieldImpact, "batch missing from vidaudit history"),
		)
		return
	}
	removed, err := store.Prune(cmd.Context(), cfg.History.KeepBatches)
	if err != nil {
		logger.Debug("history prune failed", logging.Error(err))
	} else if removed > 0 {
		logger.Debug("history pruned", logging.Int("removed", removed))
	}
}
