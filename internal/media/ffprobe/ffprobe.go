package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result represents the parsed output from an ffprobe inspection. Streams
// carries the typed fields the package inspects itself; every other field
// stays in the untyped map returned by VideoStreamFields.
type Result struct {
	Streams []Stream `json:"streams"`
	fields  []map[string]any
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int        `json:"index"`
	CodecName string     `json:"codec_name"`
	CodecType string     `json:"codec_type"`
	SideData  []SideData `json:"side_data_list"`
}

// SideData is one entry of a stream's side_data_list. Only the Dolby Vision
// configuration fields are decoded.
type SideData struct {
	Type           string `json:"side_data_type"`
	DVVersionMajor int    `json:"dv_version_major"`
	DVProfile      int    `json:"dv_profile"`
	DVLevel        int    `json:"dv_level"`
	RPUPresent     int    `json:"rpu_present_flag"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response. Only the first video stream is requested.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-hide_banner", "-select_streams", "v:0", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Result{}, fmt.Errorf("ffprobe inspect: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe inspect: %w", err)
	}
	return Parse(output)
}

// Parse decodes an ffprobe JSON document.
func Parse(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	var loose struct {
		Streams []map[string]any `json:"streams"`
	}
	if err := json.Unmarshal(data, &loose); err != nil {
		return Result{}, fmt.Errorf("ffprobe parse: %w", err)
	}
	result.fields = loose.Streams
	return result, nil
}

func (r Result) firstVideo() int {
	for i, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "video") {
			return i
		}
	}
	return -1
}

// VideoStreamFields returns the untyped field map of the first video
// stream, as ffprobe reported it. The boolean is false when the file has no
// video stream.
func (r Result) VideoStreamFields() (map[string]any, bool) {
	idx := r.firstVideo()
	if idx < 0 || idx >= len(r.fields) {
		return nil, false
	}
	fields := make(map[string]any, len(r.fields[idx]))
	for k, v := range r.fields[idx] {
		fields[k] = v
	}
	return fields, true
}

// DolbyVision reports whether the first video stream carries a Dolby Vision
// configuration record or RPU.
func (r Result) DolbyVision() bool {
	idx := r.firstVideo()
	if idx < 0 {
		return false
	}
	for _, sd := range r.Streams[idx].SideData {
		switch {
		case strings.Contains(sd.Type, "DOVI"), strings.Contains(sd.Type, "Dolby"):
			return true
		case sd.DVVersionMajor > 0, sd.DVProfile > 0, sd.RPUPresent == 1:
			return true
		}
	}
	return false
}
