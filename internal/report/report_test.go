package report_test

import (
	"testing"
	"time"

	"vidaudit/internal/classify"
	"vidaudit/internal/report"
	"vidaudit/internal/stream"
	"vidaudit/internal/tally"
)

func classified() []classify.File {
	return []classify.File{
		classify.Classify("/shoot/day1/a.mp4", stream.Metadata{Width: 1920, Height: 1080, FrameRateNumerator: 30, FrameRateDenominator: 1, ColorTransfer: "bt709"}),
		classify.Classify("/shoot/day1/b.mkv", stream.Metadata{Width: 3840, Height: 2160, FrameRateNumerator: 60000, FrameRateDenominator: 1001, ColorTransfer: "smpte2084", DolbyVision: true}),
		classify.Classify("/shoot/day2/c.mov", stream.Metadata{Width: 1280, Height: 720, FrameRateNumerator: 24, FrameRateDenominator: 1, PixelFormat: "yuv420p10le"}),
		classify.Classify("/shoot/day2/d.R3D", stream.Metadata{Width: 4096, Height: 2160, FrameRateNumerator: 24, FrameRateDenominator: 1}),
	}
}

func TestBuildRowsAndTally(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	model := report.Build(report.Input{
		BatchID:    "batch-1",
		Root:       "/shoot",
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Files:      classified(),
		ISO:        map[string]string{"/shoot/day1/a.mp4": "6400", "/shoot/day2/d.R3D": "1600", "/shoot/day1/b.mkv": "12800"},
		Skipped:    []report.Skipped{{Path: "/shoot/broken.mp4", Reason: "no video stream"}},
	})

	if len(model.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(model.Rows))
	}
	first := model.Rows[0]
	if first.Directory != "/shoot/day1" || first.FileName != "a.mp4" {
		t.Fatalf("unexpected path split %q %q", first.Directory, first.FileName)
	}
	if first.ResolutionDisplay() != "1920x1080 (1080p)" || first.FramerateDisplay() != "30 fps" || first.ColorDisplay() != "SDR" {
		t.Fatalf("unexpected displays %q %q %q", first.ResolutionDisplay(), first.FramerateDisplay(), first.ColorDisplay())
	}
	if first.Note != "ISO 6400: consider denoising first" {
		t.Fatalf("unexpected note %q", first.Note)
	}
	if model.Rows[1].Note != "Dolby Vision: grade before import" {
		t.Fatalf("Dolby Vision note must win over ISO, got %q", model.Rows[1].Note)
	}
	if model.Rows[3].Note != "ISO 1600: consider denoising first" {
		t.Fatalf("expected RAW threshold to apply, got %q", model.Rows[3].Note)
	}

	if model.Tally.Total != 4 {
		t.Fatalf("skipped files must not be counted, total=%d", model.Tally.Total)
	}
	if len(model.Skipped) != 1 || model.Skipped[0].Reason != "no video stream" {
		t.Fatalf("unexpected skipped %+v", model.Skipped)
	}
	if model.Percentages.Resolution[classify.ResolutionUltraHD4K] != 50 {
		t.Fatalf("unexpected percentages %+v", model.Percentages.Resolution)
	}
	if model.Duration() != 90*time.Second {
		t.Fatalf("unexpected duration %v", model.Duration())
	}
	if model.Thresholds.ISO != report.DefaultISOThreshold || model.Thresholds.RAWISO != report.DefaultRAWISOThreshold {
		t.Fatalf("expected default thresholds, got %+v", model.Thresholds)
	}
}

func TestBuildUsesSuppliedTally(t *testing.T) {
	files := classified()
	supplied := tally.Aggregate(files)
	model := report.Build(report.Input{Files: files, Tally: supplied})
	if model.Tally != supplied {
		t.Fatal("expected supplied tally to be used")
	}
}

func TestBuildEmptyBatch(t *testing.T) {
	model := report.Build(report.Input{Root: "/empty"})
	if model.Tally.Total != 0 || len(model.Rows) != 0 {
		t.Fatalf("unexpected model %+v", model)
	}
	if model.Skipped == nil {
		t.Fatal("expected non-nil skipped slice")
	}
	if model.Percentages.HDR != 0 || model.Percentages.SDR != 0 {
		t.Fatalf("expected zero percentages, got %+v", model.Percentages)
	}
	if len(model.Groups()) != 0 {
		t.Fatalf("expected no groups, got %+v", model.Groups())
	}
}

func TestAdvisoryNote(t *testing.T) {
	plain := classify.Classify("/a.mp4", stream.Metadata{Width: 1920, Height: 1080})
	raw := classify.Classify("/a.nev", stream.Metadata{Width: 1920, Height: 1080})
	th := report.Thresholds{}
	cases := []struct {
		name string
		file classify.File
		iso  string
		want string
	}{
		{"no iso", plain, "", ""},
		{"below threshold", plain, "4000", ""},
		{"above threshold", plain, "4001", "ISO 4001: consider denoising first"},
		{"raw above", raw, "801", "ISO 801: consider denoising first"},
		{"raw at threshold", raw, "800", ""},
		{"verbatim", plain, "Auto", "Auto"},
	}
	for _, tc := range cases {
		if got := report.AdvisoryNote(tc.file, tc.iso, th); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
	if got := report.AdvisoryNote(plain, "500", report.Thresholds{ISO: 400}); got != "ISO 500: consider denoising first" {
		t.Fatalf("custom threshold ignored: %q", got)
	}
}

func TestGroupsOrderByBucket(t *testing.T) {
	model := report.Build(report.Input{Files: classified()})
	groups := model.Groups()
	want := []classify.Bucket{classify.BucketHDR, classify.BucketWarn, classify.BucketInfo}
	if len(groups) != len(want) {
		t.Fatalf("expected %d groups, got %+v", len(want), groups)
	}
	for i, b := range want {
		if groups[i].Bucket != b {
			t.Fatalf("group %d: got %s, want %s", i, groups[i].Bucket, b)
		}
	}
}
