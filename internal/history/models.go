package history

import (
	"time"

	"vidaudit/internal/classify"
	"vidaudit/internal/report"
	"vidaudit/internal/tally"
)

// BatchSummary is the headline of one stored batch.
type BatchSummary struct {
	ID         string    `json:"id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	HDR        int       `json:"hdr"`
	OtherColor int       `json:"other_color"`
	Warn       int       `json:"warn"`
	Skipped    int       `json:"skipped"`
	ReportPath string    `json:"report_path,omitempty"`
}

// SDR mirrors tally.Tally.SDR for the stored headline counts.
func (b BatchSummary) SDR() int {
	return b.Total - b.HDR - b.OtherColor
}

// FileRecord is the stored form of one classified row.
type FileRecord struct {
	Path             string                  `json:"path"`
	Dimensions       string                  `json:"dimensions"`
	Resolution       classify.ResolutionTier `json:"resolution"`
	Framerate        classify.FramerateTier  `json:"framerate"`
	FramerateDisplay string                  `json:"framerate_display"`
	Color            classify.ColorTier      `json:"color"`
	ColorDisplay     string                  `json:"color_display"`
	Severity         classify.Severity       `json:"severity"`
	Bucket           classify.Bucket         `json:"bucket"`
	RAW              bool                    `json:"raw,omitempty"`
	DolbyVision      bool                    `json:"dolby_vision,omitempty"`
	ISO              string                  `json:"iso,omitempty"`
	Note             string                  `json:"note,omitempty"`
}

// Batch is a stored batch with its tally and rows.
type Batch struct {
	BatchSummary
	Tally        *tally.Tally     `json:"tally"`
	Files        []FileRecord     `json:"files"`
	SkippedFiles []report.Skipped `json:"skipped_files"`
}

func recordFromRow(row report.Row) FileRecord {
	return FileRecord{
		Path:             row.Path,
		Dimensions:       row.Resolution.Dimensions,
		Resolution:       row.Resolution.Tier,
		Framerate:        row.Framerate.Tier,
		FramerateDisplay: row.FramerateDisplay(),
		Color:            row.Color.Tier,
		ColorDisplay:     row.ColorDisplay(),
		Severity:         row.RowSeverity,
		Bucket:           row.Bucket,
		RAW:              row.RAW,
		DolbyVision:      row.Color.DolbyVision,
		ISO:              row.ISO,
		Note:             row.Note,
	}
}
