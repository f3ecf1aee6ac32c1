package classify

import (
	"path/filepath"
	"strings"

	"vidaudit/internal/stream"
)

// DefaultRAWExtensions lists camera RAW containers that are always flagged.
var DefaultRAWExtensions = []string{".crm", ".nev", ".r3d"}

// File is the classification of one video file.
type File struct {
	Path        string           `json:"path"`
	Metadata    stream.Metadata  `json:"metadata"`
	Resolution  ResolutionResult `json:"resolution"`
	Framerate   FramerateResult  `json:"framerate"`
	Color       ColorResult      `json:"color"`
	RowSeverity Severity         `json:"row_severity"`
	Bucket      Bucket           `json:"bucket"`
	RAW         bool             `json:"raw,omitempty"`
}

// IsHDR reports whether the colour axis classified the file as HDR.
func (f File) IsHDR() bool { return f.Color.HDR }

// IsWarn reports whether any axis is Warn, independent of the HDR bucket.
func (f File) IsWarn() bool { return f.RowSeverity == SeverityWarn }

// RAWLabel leads the colour display of RAW footage.
const RAWLabel = "RAW video"

// ColorDisplay is the colour display of the file. RAW footage gets RAWLabel
// ahead of the colour labels; the Dolby Vision prefix still comes first.
func (f File) ColorDisplay() string {
	if !f.RAW {
		return f.Color.Display()
	}
	c := f.Color
	c.DolbyVision = false
	display := RAWLabel + ", " + c.Display()
	if f.Color.DolbyVision {
		display = "Dolby Vision " + display
	}
	return display
}

// Options tunes the informational flags of a classification.
type Options struct {
	RAWExtensions []string
}

// Classify classifies md for the file at path with default options.
func Classify(path string, md stream.Metadata) File {
	return ClassifyWithOptions(path, md, Options{})
}

// ClassifyWithOptions classifies md for the file at path.
func ClassifyWithOptions(path string, md stream.Metadata, opts Options) File {
	res := ClassifyResolution(md.Width, md.Height)
	fps := ClassifyFramerate(md.FrameRateNumerator, md.FrameRateDenominator)
	color := ClassifyColor(md)

	row := RowSeverity(res.Severity, fps.Severity, color.Severity)
	return File{
		Path:        path,
		Metadata:    md,
		Resolution:  res,
		Framerate:   fps,
		Color:       color,
		RowSeverity: row,
		Bucket:      DisplayBucket(row, color.HDR),
		RAW:         isRAW(path, md, opts.RAWExtensions),
	}
}

func isRAW(path string, md stream.Metadata, rawExtensions []string) bool {
	if len(rawExtensions) == 0 {
		rawExtensions = DefaultRAWExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range rawExtensions {
		if ext != "" && ext == strings.ToLower(candidate) {
			return true
		}
	}
	if ext != ".mov" {
		return false
	}
	codec := strings.ToLower(md.CodecName)
	if strings.Contains(codec, "prores") && strings.Contains(codec, "raw") {
		return true
	}
	switch strings.ToLower(md.CodecTag) {
	case "aprh", "aprn":
		return true
	default:
		return false
	}
}
