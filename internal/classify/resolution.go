package classify

import "fmt"

// ResolutionTier is the coarse resolution bucket of a stream.
type ResolutionTier string

const (
	ResolutionLow           ResolutionTier = "low"
	ResolutionStandard1080p ResolutionTier = "1080p"
	ResolutionUltraHD4K     ResolutionTier = "4k"
)

// ResolutionTiers enumerates every resolution tier.
var ResolutionTiers = []ResolutionTier{ResolutionLow, ResolutionStandard1080p, ResolutionUltraHD4K}

// ResolutionResult is the resolution axis of a classification.
type ResolutionResult struct {
	Tier       ResolutionTier `json:"tier"`
	Label      string         `json:"label"`
	Dimensions string         `json:"dimensions"`
	Severity   Severity       `json:"severity"`
}

// ClassifyResolution buckets a frame size. The longer side is compared
// against the width thresholds so portrait footage matches landscape.
func ClassifyResolution(width, height int) ResolutionResult {
	long, short := width, height
	if short > long {
		long, short = short, long
	}
	result := ResolutionResult{Dimensions: fmt.Sprintf("%dx%d", width, height)}

	switch {
	case long < 1920 || short < 1080:
		result.Tier = ResolutionLow
		result.Label = "Low (<1080p)"
		result.Severity = SeverityWarn
	case long >= 3840 && short >= 2160:
		result.Tier = ResolutionUltraHD4K
		result.Label = "4K"
		result.Severity = SeverityGood
	default:
		result.Tier = ResolutionStandard1080p
		result.Label = "1080p"
		result.Severity = SeverityInfo
	}
	return result
}
