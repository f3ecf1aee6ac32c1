package render_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"vidaudit/internal/classify"
	"vidaudit/internal/render"
	"vidaudit/internal/report"
	"vidaudit/internal/stream"
)

func sampleModel() report.Model {
	files := []classify.File{
		classify.Classify("/shoot/a.mp4", stream.Metadata{Width: 1920, Height: 1080, FrameRateNumerator: 30, FrameRateDenominator: 1}),
		classify.Classify("/shoot/<script>.mkv", stream.Metadata{Width: 3840, Height: 2160, FrameRateNumerator: 60, FrameRateDenominator: 1, ColorTransfer: "smpte2084", DolbyVision: true}),
		classify.Classify("/shoot/c.mov", stream.Metadata{Width: 1280, Height: 720, FrameRateNumerator: 24, FrameRateDenominator: 1, PixelFormat: "yuv420p10le"}),
	}
	at := time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC)
	return report.Build(report.Input{
		BatchID:    "b-1",
		Root:       "/shoot",
		StartedAt:  at,
		FinishedAt: at,
		Files:      files,
		ISO:        map[string]string{"/shoot/c.mov": "6400"},
		Skipped:    []report.Skipped{{Path: "/shoot/bad.mp4", Reason: "invalid dimensions: 0x0"}},
	})
}

func renderDoc(t *testing.T, m report.Model) (*goquery.Document, string) {
	t.Helper()
	var buf bytes.Buffer
	if err := render.HTML(&buf, m); err != nil {
		t.Fatalf("HTML: %v", err)
	}
	html := buf.String()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc, html
}

func TestHTMLGroupsRowsByBucket(t *testing.T) {
	doc, _ := renderDoc(t, sampleModel())

	var buckets []string
	doc.Find("tr.group").Each(func(_ int, s *goquery.Selection) {
		b, _ := s.Attr("data-bucket")
		buckets = append(buckets, b)
	})
	want := []string{"hdr", "warn", "info"}
	if strings.Join(buckets, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected group order %v", buckets)
	}

	rows := doc.Find("tr.data-row")
	if rows.Length() != 3 {
		t.Fatalf("expected 3 data rows, got %d", rows.Length())
	}
	hdr := rows.First()
	if !hdr.HasClass("blue") {
		t.Fatalf("expected HDR row to be blue, got %q", hdr.AttrOr("class", ""))
	}
	if got := strings.TrimSpace(hdr.Find("td.color").Text()); got != "Dolby Vision HDR10" {
		t.Fatalf("unexpected color cell %q", got)
	}
	if got := strings.TrimSpace(hdr.Find("td.note").Text()); got != "Dolby Vision: grade before import" {
		t.Fatalf("unexpected note %q", got)
	}
	warn := rows.Eq(1)
	if !warn.HasClass("red") || strings.TrimSpace(warn.Find("td.note").Text()) != "ISO 6400: consider denoising first" {
		t.Fatalf("unexpected warn row %q / %q", warn.AttrOr("class", ""), warn.Find("td.note").Text())
	}
	if got := strings.TrimSpace(rows.Eq(2).Find("td.note").Text()); got != "-" {
		t.Fatalf("expected placeholder note, got %q", got)
	}
}

func TestHTMLMarksRAWRows(t *testing.T) {
	raw := classify.Classify("/shoot/A001.R3D", stream.Metadata{Width: 4096, Height: 2160, FrameRateNumerator: 24, FrameRateDenominator: 1, ColorTransfer: "bt709"})
	plain := classify.Classify("/shoot/b.mp4", stream.Metadata{Width: 4096, Height: 2160, FrameRateNumerator: 24, FrameRateDenominator: 1, ColorTransfer: "bt709"})
	m := report.Build(report.Input{Root: "/shoot", Files: []classify.File{raw, plain}})
	doc, _ := renderDoc(t, m)

	cells := map[string]string{}
	doc.Find("tr.data-row").Each(func(_ int, s *goquery.Selection) {
		cells[s.Find("td.name").Text()] = strings.TrimSpace(s.Find("td.color").Text())
	})
	if cells["A001.R3D"] != "RAW video, SDR" {
		t.Fatalf("unexpected RAW color cell %q", cells["A001.R3D"])
	}
	if cells["b.mp4"] != "SDR" {
		t.Fatalf("unexpected plain color cell %q", cells["b.mp4"])
	}
	if m.Tally.OtherColor != 0 || m.Tally.SDR() != 2 || m.Tally.RAW != 1 {
		t.Fatalf("RAW flag must not move tallies: %+v", m.Tally)
	}
}

func TestHTMLEscapesPaths(t *testing.T) {
	doc, raw := renderDoc(t, sampleModel())
	if strings.Contains(raw, "<script>.mkv") {
		t.Fatal("file name was not escaped")
	}
	if doc.Find("script").Length() != 0 {
		t.Fatal("unexpected script element in output")
	}
	if got := doc.Find("tr.data-row td.name").First().Text(); got != "<script>.mkv" {
		t.Fatalf("expected escaped name to round-trip, got %q", got)
	}
}

func TestHTMLSummaryCards(t *testing.T) {
	doc, _ := renderDoc(t, sampleModel())
	if got := doc.Find("#summary-total .count").First().Text(); got != "3" {
		t.Fatalf("unexpected total %q", got)
	}
	if got := doc.Find(`#summary-resolution [data-tier="4k"] .count`).Text(); got != "1 (33.3%)" {
		t.Fatalf("unexpected 4k stat %q", got)
	}
	if got := doc.Find(`#summary-color [data-tier="hdr"] .count`).Text(); got != "1 (33.3%)" {
		t.Fatalf("unexpected hdr stat %q", got)
	}
	if doc.Find(`#summary-framerate .stat`).Length() != len(classify.FramerateTiers) {
		t.Fatal("expected one framerate stat per tier")
	}
	if doc.Find("#skipped tbody tr").Length() != 1 {
		t.Fatal("expected skipped table row")
	}
	if got := doc.Find("#generated").Text(); got != "Generated 2026-05-04 12:30:00" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}

func TestHTMLEmptyState(t *testing.T) {
	doc, _ := renderDoc(t, report.Build(report.Input{Root: "/empty"}))
	if doc.Find("tr.empty-state").Length() != 1 {
		t.Fatal("expected empty state row")
	}
	if got := doc.Find(`#summary-resolution [data-tier="low"] .count`).Text(); got != "0 (0.0%)" {
		t.Fatalf("unexpected empty stat %q", got)
	}
	if doc.Find("#skipped").Length() != 0 {
		t.Fatal("skipped table should be omitted when nothing was skipped")
	}
}

func TestHTMLRequiresTally(t *testing.T) {
	if err := render.HTML(&bytes.Buffer{}, report.Model{}); err == nil {
		t.Fatal("expected error for model without tally")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := render.JSON(&buf, sampleModel()); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded struct {
		BatchID string `json:"batch_id"`
		Rows    []struct {
			Path     string `json:"path"`
			FileName string `json:"file_name"`
			Bucket   string `json:"bucket"`
		} `json:"rows"`
		Tally struct {
			Total int `json:"total"`
			HDR   int `json:"hdr"`
		} `json:"tally"`
		Percentages struct {
			SDR float64 `json:"sdr"`
		} `json:"percentages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.BatchID != "b-1" || len(decoded.Rows) != 3 || decoded.Tally.Total != 3 || decoded.Tally.HDR != 1 {
		t.Fatalf("unexpected JSON %+v", decoded)
	}
	if decoded.Rows[1].FileName != "<script>.mkv" || decoded.Rows[1].Bucket != "hdr" {
		t.Fatalf("unexpected row %+v", decoded.Rows[1])
	}
	if decoded.Percentages.SDR != 33.4 {
		t.Fatalf("unexpected SDR percentage %v", decoded.Percentages.SDR)
	}
}
