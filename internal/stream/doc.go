// Package stream turns the raw field map of a probed video stream into a
// typed Metadata record.
//
// The field names follow ffprobe's JSON stream output (width, height,
// r_frame_rate, color_transfer, color_primaries, color_space, pix_fmt). A
// missing stream or non-positive dimensions are reported as errors so the
// batch runner can skip the file; an unreadable frame rate is not an error
// and simply yields a zero denominator, which classifies as an unknown rate.
package stream
