package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vidaudit/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect previously recorded audit batches",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded batches, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			batches, err := store.ListBatches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if batches == nil {
					batches = []history.BatchSummary{}
				}
				return writeJSON(cmd, batches)
			}
			out := cmd.OutOrStdout()
			if len(batches) == 0 {
				fmt.Fprintln(out, "No batches recorded")
				return nil
			}
			rows := make([][]string, 0, len(batches))
			for _, b := range batches {
				rows = append(rows, []string{
					shortID(b.ID),
					b.StartedAt.Local().Format(time.DateTime),
					b.Root,
					formatCount(b.Total),
					formatCount(b.HDR),
					formatCount(b.Warn),
					formatCount(b.Skipped),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				Headers: []string{"ID", "Started", "Library", "Files", "HDR", "Warn", "Skipped"},
				Rows:    rows,
				Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			}))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum batches to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print batches as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded batch (id or unique prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			batch, err := store.GetBatch(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, history.ErrNotFound) {
					return fmt.Errorf("no batch matches %q (see `vidaudit history list`)", args[0])
				}
				return err
			}
			if asJSON {
				return writeJSON(cmd, batch)
			}
			writeBatch(cmd, batch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the batch as JSON")
	return cmd
}

func writeBatch(cmd *cobra.Command, batch *history.Batch) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Batch "+batch.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderStatusLine("Library", statusInfo, batch.Root, colorize))
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, batch.StartedAt.Local().Format(time.DateTime), colorize))
	fmt.Fprintln(out, renderStatusLine("Duration", statusInfo, formatDuration(batch.FinishedAt.Sub(batch.StartedAt)), colorize))
	fmt.Fprintln(out, renderStatusLine("Classified", statusOK, pluralize(batch.Total, "file", "files"), colorize))
	fmt.Fprintln(out, renderStatusLine("SDR / HDR / Other", statusInfo,
		fmt.Sprintf("%s / %s / %s", formatCount(batch.SDR()), formatCount(batch.HDR), formatCount(batch.OtherColor)), colorize))
	if batch.ReportPath != "" {
		fmt.Fprintln(out, renderStatusLine("Report", statusInfo, batch.ReportPath, colorize))
	}
	fmt.Fprintln(out)

	if len(batch.Files) > 0 {
		rows := make([][]string, 0, len(batch.Files))
		for _, f := range batch.Files {
			note := f.Note
			if note == "" {
				note = "-"
			}
			rows = append(rows, []string{
				paint(string(f.Bucket), bucketColor(f.Bucket), colorize),
				f.Path,
				f.Dimensions,
				f.FramerateDisplay,
				f.ColorDisplay,
				note,
			})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Headers: []string{"Group", "File", "Resolution", "Frame rate", "Colour", "Note"},
			Rows:    rows,
		}))
	}
	if len(batch.SkippedFiles) > 0 {
		fmt.Fprintln(out, skippedTable(batch.SkippedFiles))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
