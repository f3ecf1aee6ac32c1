package classify

// Severity grades a single axis result or a whole row.
type Severity string

const (
	SeverityNeutral Severity = "neutral"
	SeverityGood    Severity = "good"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
)

// Bucket is the display grouping of a row. HDR outranks every severity.
type Bucket string

const (
	BucketHDR  Bucket = "hdr"
	BucketWarn Bucket = "warn"
	BucketInfo Bucket = "info"
	BucketGood Bucket = "good"
)

// Buckets lists display buckets in display precedence order.
var Buckets = []Bucket{BucketHDR, BucketWarn, BucketInfo, BucketGood}

// RowSeverity combines axis severities: Warn beats Info beats Good.
// Neutral axes do not contribute; a row with no graded axis is Good.
func RowSeverity(severities ...Severity) Severity {
	var info, good bool
	for _, s := range severities {
		switch s {
		case SeverityWarn:
			return SeverityWarn
		case SeverityInfo:
			info = true
		case SeverityGood:
			good = true
		}
	}
	switch {
	case info:
		return SeverityInfo
	case good:
		return SeverityGood
	default:
		return SeverityGood
	}
}

// DisplayBucket picks the grouping bucket for a row.
func DisplayBucket(row Severity, hdr bool) Bucket {
	if hdr {
		return BucketHDR
	}
	switch row {
	case SeverityWarn:
		return BucketWarn
	case SeverityInfo:
		return BucketInfo
	default:
		return BucketGood
	}
}
