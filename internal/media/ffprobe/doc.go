// Package ffprobe runs ffprobe and decodes its JSON output.
//
// Key types:
//   - Result: parsed ffprobe output for the requested streams
//   - Stream: typed view of one stream's codec type and side data
//
// Primary entry points:
//   - Inspect: executes ffprobe for the first video stream and returns a Result
//   - Parse: decodes an ffprobe JSON document captured elsewhere
//
// VideoStreamFields exposes the untyped field map of the first video stream
// for internal/stream to normalise; DolbyVision inspects its side data.
package ffprobe
