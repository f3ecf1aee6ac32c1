// Package exiftool reads exposure metadata from media files with exiftool.
package exiftool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ISOKeys are the tags consulted for ISO, in order of preference.
var ISOKeys = []string{"ISO", "ISOSensitivity", "RecommendedExposureIndex"}

// ReadISO returns the first non-empty ISO tag of path. Numeric values are
// returned as integers; anything else is returned verbatim. An empty string
// with a nil error means the file carries no ISO tag.
func ReadISO(ctx context.Context, binary string, path string) (string, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "exiftool"
	}
	if strings.TrimSpace(path) == "" {
		return "", errors.New("exiftool: empty path")
	}

	args := []string{"-json"}
	for _, key := range ISOKeys {
		args = append(args, "-"+key)
	}
	args = append(args, "--", path)

	output, err := exec.CommandContext(ctx, binary, args...).Output()
	if err != nil {
		return "", fmt.Errorf("exiftool %s: %w", path, err)
	}
	return ParseISO(output)
}

// ParseISO extracts the ISO value from exiftool -json output.
func ParseISO(data []byte) (string, error) {
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return "", fmt.Errorf("exiftool parse: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}
	record := records[0]
	for _, key := range ISOKeys {
		if value := formatValue(record[key]); value != "" {
			return value, nil
		}
	}
	return "", nil
}

func formatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return ""
		}
		return strconv.FormatInt(int64(value), 10)
	case string:
		return strings.TrimSpace(value)
	case bool:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}

// Numeric parses an ISO string as returned by ReadISO. Only plain integers
// are numeric; other values are meant to be shown verbatim.
func Numeric(iso string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(iso))
	if err != nil {
		return 0, false
	}
	return n, true
}
