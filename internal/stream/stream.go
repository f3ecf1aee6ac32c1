package stream

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissingStream reports that the probe output holds no video stream.
	ErrMissingStream = errors.New("no video stream")
	// ErrInvalidDimensions reports a width or height that is not positive.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)

// Field names of the probe's structured stream output.
const (
	FieldWidth          = "width"
	FieldHeight         = "height"
	FieldFrameRate      = "r_frame_rate"
	FieldColorTransfer  = "color_transfer"
	FieldColorPrimaries = "color_primaries"
	FieldColorSpace     = "color_space"
	FieldPixelFormat    = "pix_fmt"
	FieldCodecName      = "codec_name"
	FieldCodecTag       = "codec_tag_string"
)

// Metadata is the canonical, immutable description of one video stream.
// Empty colour and pixel format strings mean the field was absent.
type Metadata struct {
	Width                int     `json:"width"`
	Height               int     `json:"height"`
	FrameRateNumerator   float64 `json:"frame_rate_numerator"`
	FrameRateDenominator float64 `json:"frame_rate_denominator"`
	ColorTransfer        string  `json:"color_transfer,omitempty"`
	ColorPrimaries       string  `json:"color_primaries,omitempty"`
	ColorSpace           string  `json:"color_space,omitempty"`
	PixelFormat          string  `json:"pix_fmt,omitempty"`
	CodecName            string  `json:"codec_name,omitempty"`
	CodecTag             string  `json:"codec_tag,omitempty"`
	DolbyVision          bool    `json:"dolby_vision,omitempty"`
}

// FrameRate returns numerator/denominator, or 0 when the denominator is 0.
func (m Metadata) FrameRate() float64 {
	if m.FrameRateDenominator == 0 {
		return 0
	}
	return m.FrameRateNumerator / m.FrameRateDenominator
}

// Normalize validates and types a raw stream field map. A nil map means the
// probe found no video stream.
func Normalize(fields map[string]any) (Metadata, error) {
	if fields == nil {
		return Metadata{}, ErrMissingStream
	}

	width := intField(fields, FieldWidth)
	height := intField(fields, FieldHeight)
	if width <= 0 || height <= 0 {
		return Metadata{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	num, den := ParseFrameRate(stringField(fields, FieldFrameRate))

	return Metadata{
		Width:                width,
		Height:               height,
		FrameRateNumerator:   num,
		FrameRateDenominator: den,
		ColorTransfer:        stringField(fields, FieldColorTransfer),
		ColorPrimaries:       stringField(fields, FieldColorPrimaries),
		ColorSpace:           stringField(fields, FieldColorSpace),
		PixelFormat:          stringField(fields, FieldPixelFormat),
		CodecName:            stringField(fields, FieldCodecName),
		CodecTag:             stringField(fields, FieldCodecTag),
	}, nil
}

// ParseFrameRate parses "N/D" or a plain number into a numerator and
// denominator. Anything unparseable yields 0/0.
func ParseFrameRate(value string) (float64, float64) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, 0
	}
	if num, den, ok := strings.Cut(value, "/"); ok {
		n, errN := parseFinite(num)
		d, errD := parseFinite(den)
		if errN != nil || errD != nil {
			return 0, 0
		}
		return n, d
	}
	n, err := parseFinite(value)
	if err != nil {
		return 0, 0
	}
	return n, 1
}

func parseFinite(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, fmt.Errorf("non-finite value %q", value)
	}
	return parsed, nil
}

// intField reads an integral field. Fractional or non-finite values read as
// 0 so Normalize rejects them.
func intField(fields map[string]any, key string) int {
	switch v := fields[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return integral(v)
	case string:
		parsed, err := parseFinite(v)
		if err != nil {
			return 0
		}
		return integral(parsed)
	default:
		return 0
	}
}

func integral(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0
	}
	return int(v)
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
