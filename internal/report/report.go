// Package report assembles the presentation-neutral model of one audit
// batch: classified rows, the batch tally with percentages, and the files
// that could not be classified. Renderers consume Model and nothing else.
package report

import (
	"fmt"
	"path/filepath"
	"time"

	"vidaudit/internal/classify"
	"vidaudit/internal/media/exiftool"
	"vidaudit/internal/tally"
)

// Default ISO advisory thresholds.
const (
	DefaultISOThreshold    = 4000
	DefaultRAWISOThreshold = 800
)

// Thresholds controls when an ISO value produces a denoise advisory.
type Thresholds struct {
	ISO    int `json:"iso"`
	RAWISO int `json:"raw_iso"`
}

func (t Thresholds) withDefaults() Thresholds {
	if t.ISO <= 0 {
		t.ISO = DefaultISOThreshold
	}
	if t.RAWISO <= 0 {
		t.RAWISO = DefaultRAWISOThreshold
	}
	return t
}

// Skipped records a file that was enumerated but not classified.
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Row is one classified file plus the strings a report shows for it.
type Row struct {
	classify.File
	Directory string `json:"directory"`
	FileName  string `json:"file_name"`
	ISO       string `json:"iso,omitempty"`
	Note      string `json:"note,omitempty"`
}

// ResolutionDisplay is "WxH (label)".
func (r Row) ResolutionDisplay() string {
	return fmt.Sprintf("%s (%s)", r.Resolution.Dimensions, r.Resolution.Label)
}

// FramerateDisplay is the canonical frame rate string.
func (r Row) FramerateDisplay() string { return r.Framerate.Display() }

// ColorDisplay is the joined colour labels, led by the RAW label for RAW
// footage.
func (r Row) ColorDisplay() string { return r.File.ColorDisplay() }

// Group is the rows of one display bucket.
type Group struct {
	Bucket classify.Bucket `json:"bucket"`
	Rows   []Row           `json:"rows"`
}

// Model is the sole input of the renderers.
type Model struct {
	BatchID     string            `json:"batch_id"`
	Root        string            `json:"root"`
	StartedAt   time.Time         `json:"started_at"`
	FinishedAt  time.Time         `json:"finished_at"`
	Rows        []Row             `json:"rows"`
	Skipped     []Skipped         `json:"skipped"`
	Tally       *tally.Tally      `json:"tally"`
	Percentages tally.Percentages `json:"percentages"`
	Thresholds  Thresholds        `json:"thresholds"`
}

// Input is everything Build needs.
type Input struct {
	BatchID    string
	Root       string
	StartedAt  time.Time
	FinishedAt time.Time
	Files      []classify.File
	// ISO maps a file path to the raw ISO string read for it.
	ISO        map[string]string
	Skipped    []Skipped
	Thresholds Thresholds
	// Tally may be supplied by a runner that merged partial tallies; when
	// nil it is aggregated from Files.
	Tally *tally.Tally
}

// Build produces the report model. Rows keep the order of in.Files.
func Build(in Input) Model {
	thresholds := in.Thresholds.withDefaults()
	t := in.Tally
	if t == nil {
		t = tally.Aggregate(in.Files)
	}

	rows := make([]Row, 0, len(in.Files))
	for _, f := range in.Files {
		iso := in.ISO[f.Path]
		rows = append(rows, Row{
			File:      f,
			Directory: filepath.Dir(f.Path),
			FileName:  filepath.Base(f.Path),
			ISO:       iso,
			Note:      AdvisoryNote(f, iso, thresholds),
		})
	}
	skipped := append([]Skipped(nil), in.Skipped...)
	if skipped == nil {
		skipped = []Skipped{}
	}

	return Model{
		BatchID:     in.BatchID,
		Root:        in.Root,
		StartedAt:   in.StartedAt,
		FinishedAt:  in.FinishedAt,
		Rows:        rows,
		Skipped:     skipped,
		Tally:       t,
		Percentages: t.Percentages(),
		Thresholds:  thresholds,
	}
}

// AdvisoryNote returns the pre-import hint for a file. Dolby Vision wins
// over ISO; an ISO at or below the threshold yields no note; a non-numeric
// ISO is passed through verbatim.
func AdvisoryNote(f classify.File, iso string, thresholds Thresholds) string {
	thresholds = thresholds.withDefaults()
	if f.Color.DolbyVision {
		return "Dolby Vision: grade before import"
	}
	if iso == "" {
		return ""
	}
	n, ok := exiftool.Numeric(iso)
	if !ok {
		return iso
	}
	limit := thresholds.ISO
	if f.RAW {
		limit = thresholds.RAWISO
	}
	if n > limit {
		return fmt.Sprintf("ISO %d: consider denoising first", n)
	}
	return ""
}

// Groups returns rows grouped by display bucket in precedence order. Empty
// buckets are omitted.
func (m Model) Groups() []Group {
	byBucket := make(map[classify.Bucket][]Row, len(classify.Buckets))
	for _, row := range m.Rows {
		byBucket[row.Bucket] = append(byBucket[row.Bucket], row)
	}
	groups := make([]Group, 0, len(classify.Buckets))
	for _, bucket := range classify.Buckets {
		if rows := byBucket[bucket]; len(rows) > 0 {
			groups = append(groups, Group{Bucket: bucket, Rows: rows})
		}
	}
	return groups
}

// Duration is the wall time of the batch.
func (m Model) Duration() time.Duration {
	if m.FinishedAt.Before(m.StartedAt) {
		return 0
	}
	return m.FinishedAt.Sub(m.StartedAt)
}
