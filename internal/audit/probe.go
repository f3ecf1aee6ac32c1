package audit

import (
	"context"
	"fmt"
	"time"

	"vidaudit/internal/media/exiftool"
	"vidaudit/internal/media/ffprobe"
	"vidaudit/internal/stream"
)

// Prober reads normalised stream metadata for one file.
type Prober interface {
	Probe(ctx context.Context, path string) (stream.Metadata, error)
}

// ISOReader reads the recorded ISO sensitivity of one file. An empty string
// means the file carries none.
type ISOReader interface {
	ReadISO(ctx context.Context, path string) (string, error)
}

// FFprobe probes files with the ffprobe binary.
type FFprobe struct {
	Binary  string
	Timeout time.Duration
}

// Probe runs ffprobe on path and normalises its first video stream.
func (p FFprobe) Probe(ctx context.Context, path string) (stream.Metadata, error) {
	ctx, cancel := withTimeout(ctx, p.Timeout)
	defer cancel()

	result, err := ffprobe.Inspect(ctx, p.Binary, path)
	if err != nil {
		return stream.Metadata{}, err
	}
	fields, ok := result.VideoStreamFields()
	if !ok {
		return stream.Metadata{}, stream.ErrMissingStream
	}
	md, err := stream.Normalize(fields)
	if err != nil {
		return stream.Metadata{}, err
	}
	md.DolbyVision = result.DolbyVision()
	return md, nil
}

// Exiftool reads ISO values with the exiftool binary.
type Exiftool struct {
	Binary  string
	Timeout time.Duration
}

// ReadISO runs exiftool on path.
func (e Exiftool) ReadISO(ctx context.Context, path string) (string, error) {
	ctx, cancel := withTimeout(ctx, e.Timeout)
	defer cancel()

	iso, err := exiftool.ReadISO(ctx, e.Binary, path)
	if err != nil {
		return "", fmt.Errorf("read iso: %w", err)
	}
	return iso, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
