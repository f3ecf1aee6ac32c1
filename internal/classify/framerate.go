package classify

import (
	"math"
	"strconv"
)

// FramerateTier is the frame-rate bucket of a stream.
type FramerateTier string

const (
	FramerateUnknown FramerateTier = "unknown"
	FramerateLow     FramerateTier = "low"
	FramerateNormal  FramerateTier = "normal"
	FramerateHigh    FramerateTier = "high"
	FramerateOther   FramerateTier = "other"
)

// FramerateTiers enumerates every frame-rate tier.
var FramerateTiers = []FramerateTier{FramerateUnknown, FramerateLow, FramerateNormal, FramerateHigh, FramerateOther}

// FramerateResult is the frame-rate axis of a classification. DisplayFPS is
// zero only for the Unknown tier.
type FramerateResult struct {
	Tier       FramerateTier `json:"tier"`
	Rate       float64       `json:"rate"`
	DisplayFPS float64       `json:"display_fps,omitempty"`
	Severity   Severity      `json:"severity"`
}

// Display renders the rate the way the report shows it.
func (r FramerateResult) Display() string {
	switch r.Tier {
	case FramerateUnknown:
		return "unknown"
	case FramerateHigh, FramerateNormal:
		return strconv.FormatFloat(r.DisplayFPS, 'f', 0, 64) + " fps"
	default:
		return strconv.FormatFloat(r.DisplayFPS, 'f', 1, 64) + " fps"
	}
}

// ClassifyFramerate buckets numerator/denominator. High and Normal rates are
// canonicalised to 60 and 30; other rates keep one decimal.
func ClassifyFramerate(numerator, denominator float64) FramerateResult {
	if denominator == 0 {
		return FramerateResult{Tier: FramerateUnknown, Severity: SeverityNeutral}
	}
	rate := numerator / denominator
	if rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return FramerateResult{Tier: FramerateUnknown, Severity: SeverityNeutral}
	}

	result := FramerateResult{Rate: rate}
	switch {
	case rate < 28:
		result.Tier = FramerateLow
		result.DisplayFPS = roundTenth(rate)
		result.Severity = SeverityWarn
	case rate >= 55 && rate <= 65:
		result.Tier = FramerateHigh
		result.DisplayFPS = 60
		result.Severity = SeverityGood
	case rate >= 29 && rate <= 31:
		result.Tier = FramerateNormal
		result.DisplayFPS = 30
		result.Severity = SeverityInfo
	default:
		result.Tier = FramerateOther
		result.DisplayFPS = roundTenth(rate)
		result.Severity = SeverityNeutral
	}
	return result
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
