// Package render writes a report.Model as an HTML page or a JSON document.
package render

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"vidaudit/internal/classify"
	"vidaudit/internal/report"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"percent":         formatPercent,
	"bucketClass":     bucketClass,
	"bucketTitle":     bucketTitle,
	"severityClass":   severityClass,
	"colorClass":      colorClass,
	"resolutionStats": resolutionStats,
	"framerateStats":  framerateStats,
	"colorStats":      colorStats,
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// HTML renders the model as a standalone HTML page. Paths and labels are
// escaped by html/template.
func HTML(w io.Writer, m report.Model) error {
	if m.Tally == nil {
		return fmt.Errorf("render html: model has no tally")
	}
	if err := pageTemplate.Execute(w, m); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// JSON renders the model as indented JSON.
func JSON(w io.Writer, m report.Model) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("render json: %w", err)
	}
	return nil
}

type stat struct {
	Tier    string
	Label   string
	Class   string
	Count   int
	Percent float64
}

func resolutionStats(m report.Model) []stat {
	labels := map[classify.ResolutionTier]string{
		classify.ResolutionLow:           "Low (<1080p)",
		classify.ResolutionStandard1080p: "1080p",
		classify.ResolutionUltraHD4K:     "4K",
	}
	classes := map[classify.ResolutionTier]string{
		classify.ResolutionLow:           "red",
		classify.ResolutionStandard1080p: "yellow",
		classify.ResolutionUltraHD4K:     "green",
	}
	out := make([]stat, 0, len(classify.ResolutionTiers))
	for _, tier := range classify.ResolutionTiers {
		out = append(out, stat{
			Tier:    string(tier),
			Label:   labels[tier],
			Class:   classes[tier],
			Count:   m.Tally.Resolution[tier],
			Percent: m.Percentages.Resolution[tier],
		})
	}
	return out
}

func framerateStats(m report.Model) []stat {
	labels := map[classify.FramerateTier]string{
		classify.FramerateUnknown: "Unknown",
		classify.FramerateLow:     "Low (<28 fps)",
		classify.FramerateNormal:  "30 fps",
		classify.FramerateHigh:    "60 fps",
		classify.FramerateOther:   "Other",
	}
	classes := map[classify.FramerateTier]string{
		classify.FramerateUnknown: "white",
		classify.FramerateLow:     "red",
		classify.FramerateNormal:  "yellow",
		classify.FramerateHigh:    "green",
		classify.FramerateOther:   "white",
	}
	out := make([]stat, 0, len(classify.FramerateTiers))
	for _, tier := range classify.FramerateTiers {
		out = append(out, stat{
			Tier:    string(tier),
			Label:   labels[tier],
			Class:   classes[tier],
			Count:   m.Tally.Framerate[tier],
			Percent: m.Percentages.Framerate[tier],
		})
	}
	return out
}

func colorStats(m report.Model) []stat {
	return []stat{
		{Tier: "sdr", Label: "SDR", Class: "green", Count: m.Tally.SDR(), Percent: m.Percentages.SDR},
		{Tier: "hdr", Label: "HDR", Class: "blue", Count: m.Tally.HDR, Percent: m.Percentages.HDR},
		{Tier: "other", Label: "Other", Class: "red", Count: m.Tally.OtherColor, Percent: m.Percentages.OtherColor},
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func bucketClass(b classify.Bucket) string {
	switch b {
	case classify.BucketHDR:
		return "blue"
	case classify.BucketWarn:
		return "red"
	case classify.BucketInfo:
		return "yellow"
	default:
		return "green"
	}
}

func bucketTitle(b classify.Bucket) string {
	switch b {
	case classify.BucketHDR:
		return "HDR"
	case classify.BucketWarn:
		return "Needs attention"
	case classify.BucketInfo:
		return "Acceptable"
	default:
		return "Good"
	}
}

func severityClass(s classify.Severity) string {
	switch s {
	case classify.SeverityWarn:
		return "red"
	case classify.SeverityInfo:
		return "yellow"
	case classify.SeverityGood:
		return "green"
	default:
		return "white"
	}
}

func colorClass(c classify.ColorResult) string {
	if c.HDR {
		return "blue"
	}
	return severityClass(c.Severity)
}
