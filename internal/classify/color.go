package classify

import (
	"strings"

	"vidaudit/internal/stream"
)

// ColorTier is the colour characteristic bucket of a stream.
type ColorTier string

const (
	ColorSDR              ColorTier = "sdr"
	ColorHDR              ColorTier = "hdr"
	ColorWideGamut        ColorTier = "wide_gamut"
	ColorHighBitDepth     ColorTier = "high_bit_depth"
	ColorAdvancedFormat   ColorTier = "advanced_format"
	ColorOtherNonStandard ColorTier = "other"
)

// ColorTiers enumerates every colour tier.
var ColorTiers = []ColorTier{
	ColorSDR,
	ColorHDR,
	ColorWideGamut,
	ColorHighBitDepth,
	ColorAdvancedFormat,
	ColorOtherNonStandard,
}

// ColorResult is the colour axis of a classification. HDR and
// OtherNonStandard are kept as separate flags because the aggregator counts
// them separately; at most one of them is set.
type ColorResult struct {
	Tier             ColorTier `json:"tier"`
	Severity         Severity  `json:"severity"`
	Notes            []string  `json:"notes"`
	Labels           []string  `json:"labels"`
	HDR              bool      `json:"hdr"`
	OtherNonStandard bool      `json:"other_non_standard"`
	DolbyVision      bool      `json:"dolby_vision,omitempty"`
}

// Display joins the labels, falling back to SDR, and prefixes Dolby Vision.
func (r ColorResult) Display() string {
	display := strings.Join(r.Labels, ", ")
	if display == "" {
		display = "SDR"
	}
	if r.DolbyVision {
		display = "Dolby Vision " + display
	}
	return display
}

// Detail joins the evidence notes.
func (r ColorResult) Detail() string {
	return strings.Join(r.Notes, ", ")
}

// colorState is the accumulator threaded through the colour stages.
type colorState struct {
	tier   ColorTier
	hdr    bool
	notes  []string
	labels []string
}

// colorDecision is what a stage returns. An empty tier keeps the current
// tier; note and label are appended when non-empty.
type colorDecision struct {
	tier  ColorTier
	hdr   bool
	note  string
	label string
}

type colorStage func(md stream.Metadata, st colorState) colorDecision

// colorStages is the cascade order. Changing it changes precedence.
var colorStages = []colorStage{
	transferStage,
	primariesStage,
	matrixStage,
	pixelFormatStage,
}

func (st colorState) apply(d colorDecision) colorState {
	if d.note != "" {
		st.notes = append(st.notes, d.note)
	}
	if d.label != "" {
		st.labels = append(st.labels, d.label)
	}
	if st.canEscalate(d.tier) {
		st.tier = d.tier
		st.hdr = d.hdr
	}
	return st
}

// canEscalate refuses keeps, returns to SDR, and any change once HDR.
func (st colorState) canEscalate(to ColorTier) bool {
	return to != "" && to != ColorSDR && !st.hdr
}

// ClassifyColor runs the colour cascade over md.
func ClassifyColor(md stream.Metadata) ColorResult {
	st := colorState{tier: ColorSDR}
	for _, stage := range colorStages {
		st = st.apply(stage(md, st))
	}

	if len(st.notes) == 0 {
		st.notes = []string{"SDR"}
		st.labels = []string{"SDR"}
	}

	result := ColorResult{
		Tier:             st.tier,
		Notes:            st.notes,
		Labels:           st.labels,
		HDR:              st.hdr,
		OtherNonStandard: st.tier != ColorSDR && st.tier != ColorHDR,
		DolbyVision:      md.DolbyVision,
	}
	switch {
	case result.HDR:
		result.Severity = SeverityInfo
	case result.OtherNonStandard:
		result.Severity = SeverityWarn
	default:
		result.Severity = SeverityGood
	}
	return result
}

type transferRule struct {
	note  string
	label string
	tier  ColorTier
	hdr   bool
}

var transferRules = map[string]transferRule{
	"smpte2084":    {note: "PQ (SMPTE 2084)", label: "HDR10", tier: ColorHDR, hdr: true},
	"arib-std-b67": {note: "HLG (ARIB STD-B67)", label: "HDR HLG", tier: ColorHDR, hdr: true},
	"bt2020-10":    {note: "BT.2020-10bit", label: "HDR10", tier: ColorHDR, hdr: true},
	"bt2020":       {note: "BT.2020", label: "Wide gamut", tier: ColorWideGamut},
	"bt709":        {note: "Rec.709"},
	"smpte170m":    {note: "BT.601"},
	"gamma22":      {note: "Gamma 2.2"},
	"gamma28":      {note: "Gamma 2.8"},
}

func transferStage(md stream.Metadata, _ colorState) colorDecision {
	if md.ColorTransfer == "" {
		return colorDecision{}
	}
	rule, ok := transferRules[md.ColorTransfer]
	if !ok {
		return colorDecision{
			tier:  ColorOtherNonStandard,
			note:  md.ColorTransfer,
			label: "Non-SDR",
		}
	}
	return colorDecision{tier: rule.tier, hdr: rule.hdr, note: rule.note, label: rule.label}
}

var standardPrimaries = map[string]bool{
	"bt709":     true,
	"smpte170m": true,
}

func isP3(primaries string) bool {
	switch primaries {
	case "p3", "smpte431", "smpte432":
		return true
	default:
		return false
	}
}

func primariesStage(md stream.Metadata, st colorState) colorDecision {
	p := md.ColorPrimaries
	if p == "" || st.hdr {
		return colorDecision{}
	}
	switch {
	case p == "bt2020" && st.tier == ColorSDR:
		return colorDecision{tier: ColorWideGamut, note: "BT.2020 gamut", label: "Wide gamut"}
	case isP3(p):
		return colorDecision{tier: ColorWideGamut, note: "DCI-P3 gamut", label: "Wide gamut"}
	case !standardPrimaries[p] && st.tier == ColorSDR:
		return colorDecision{tier: ColorOtherNonStandard, note: p + " gamut", label: "Non-standard gamut"}
	default:
		return colorDecision{}
	}
}

// matrixStage only describes the matrix coefficients; it never escalates.
func matrixStage(md stream.Metadata, _ colorState) colorDecision {
	switch md.ColorSpace {
	case "":
		return colorDecision{}
	case "bt2020nc":
		return colorDecision{note: "BT.2020 non-constant luminance", label: "BT.2020 NC"}
	case "bt2020c":
		return colorDecision{note: "BT.2020 constant luminance", label: "BT.2020 CL"}
	case "bt709":
		return colorDecision{note: "BT.709 color space", label: "Rec.709"}
	default:
		return colorDecision{note: md.ColorSpace + " color space", label: md.ColorSpace}
	}
}

func pixelFormatStage(md stream.Metadata, st colorState) colorDecision {
	pf := md.PixelFormat
	if pf == "" || st.hdr || st.tier != ColorSDR {
		return colorDecision{}
	}
	switch {
	case strings.Contains(pf, "p10") || strings.Contains(pf, "p12"):
		return colorDecision{tier: ColorHighBitDepth, note: "10/12-bit depth: " + pf, label: "High bit depth"}
	case strings.Contains(pf, "yuva"):
		return colorDecision{tier: ColorAdvancedFormat, note: "Alpha channel: " + pf, label: "Alpha channel"}
	case strings.Contains(pf, "yuv444"):
		return colorDecision{tier: ColorAdvancedFormat, note: "4:4:4 chroma: " + pf, label: "4:4:4"}
	case strings.Contains(pf, "rgb") || strings.Contains(pf, "bgr"):
		return colorDecision{tier: ColorAdvancedFormat, note: "RGB format: " + pf, label: "RGB"}
	default:
		return colorDecision{note: "Pixel format: " + pf, label: pf}
	}
}
