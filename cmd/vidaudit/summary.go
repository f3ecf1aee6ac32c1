package main

import (
	"fmt"
	"io"
	"strings"

	"vidaudit/internal/classify"
	"vidaudit/internal/report"
)

// writeSummary prints the batch headline and the three axis tables.
func writeSummary(w io.Writer, model *report.Model, colorize bool) {
	for _, line := range renderSectionHeader("Audit summary", colorize) {
		fmt.Fprintln(w, line)
	}
	if model.Root != "" {
		fmt.Fprintln(w, renderStatusLine("Library", statusInfo, model.Root, colorize))
	}
	fmt.Fprintln(w, renderStatusLine("Batch", statusInfo, model.BatchID, colorize))
	fmt.Fprintln(w, renderStatusLine("Classified", statusOK, pluralize(model.Tally.Total, "file", "files"), colorize))
	skippedKind := statusOK
	if len(model.Skipped) > 0 {
		skippedKind = statusWarn
	}
	fmt.Fprintln(w, renderStatusLine("Skipped", skippedKind, pluralize(len(model.Skipped), "file", "files"), colorize))
	fmt.Fprintln(w, renderStatusLine("Duration", statusInfo, formatDuration(model.Duration()), colorize))
	fmt.Fprintln(w)

	fmt.Fprintln(w, resolutionTable(model))
	fmt.Fprintln(w, framerateTable(model))
	fmt.Fprintln(w, colorTable(model))
}

func resolutionTable(model *report.Model) string {
	rows := make([][]string, 0, len(classify.ResolutionTiers))
	for _, tier := range classify.ResolutionTiers {
		rows = append(rows, []string{
			tierHeading(string(tier)),
			formatShare(model.Tally.Resolution[tier], model.Percentages.Resolution[tier]),
		})
	}
	return renderTable(tableSpec{
		Title:   "Resolution",
		Headers: []string{"Tier", "Files"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
	})
}

func framerateTable(model *report.Model) string {
	rows := make([][]string, 0, len(classify.FramerateTiers))
	for _, tier := range classify.FramerateTiers {
		rows = append(rows, []string{
			tierHeading(string(tier)),
			formatShare(model.Tally.Framerate[tier], model.Percentages.Framerate[tier]),
		})
	}
	return renderTable(tableSpec{
		Title:   "Frame rate",
		Headers: []string{"Tier", "Files"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
	})
}

// colorTable shows the SDR/HDR/Other split with percentages followed by the
// finer colour tiers as plain counts.
func colorTable(model *report.Model) string {
	t := model.Tally
	rows := [][]string{
		{"SDR", formatShare(t.SDR(), model.Percentages.SDR)},
		{"HDR", formatShare(t.HDR, model.Percentages.HDR)},
		{"Other", formatShare(t.OtherColor, model.Percentages.OtherColor)},
	}
	for _, tier := range classify.ColorTiers {
		switch tier {
		case classify.ColorSDR, classify.ColorHDR, classify.ColorOtherNonStandard:
			continue
		}
		rows = append(rows, []string{"  " + tierHeading(string(tier)), formatCount(t.ColorTiers[tier])})
	}
	var footer []string
	if t.DolbyVision > 0 || t.RAW > 0 {
		footer = []string{"Dolby Vision / RAW", fmt.Sprintf("%s / %s", formatCount(t.DolbyVision), formatCount(t.RAW))}
	}
	return renderTable(tableSpec{
		Title:   "Colour",
		Headers: []string{"Tier", "Files"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignRight},
		Footer:  footer,
	})
}

// filesTable lists rows grouped by display bucket.
func filesTable(model *report.Model, colorize bool) string {
	var rows [][]string
	for _, group := range model.Groups() {
		label := paint(strings.ToUpper(string(group.Bucket)), bucketColor(group.Bucket), colorize)
		for _, row := range group.Rows {
			note := row.Note
			if note == "" {
				note = "-"
			}
			rows = append(rows, []string{
				label,
				row.Path,
				row.ResolutionDisplay(),
				row.FramerateDisplay(),
				row.ColorDisplay(),
				note,
			})
		}
	}
	return renderTable(tableSpec{
		Headers: []string{"Group", "File", "Resolution", "Frame rate", "Colour", "Note"},
		Rows:    rows,
	})
}

func skippedTable(skipped []report.Skipped) string {
	rows := make([][]string, 0, len(skipped))
	for _, s := range skipped {
		rows = append(rows, []string{s.Path, s.Reason})
	}
	return renderTable(tableSpec{
		Title:   "Skipped",
		Headers: []string{"File", "Reason"},
		Rows:    rows,
	})
}
