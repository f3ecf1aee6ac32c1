// Package classify converts stream metadata into quality tiers.
//
// Three independent axes are evaluated for every file:
//   - Resolution: Low, Standard1080p or UltraHD4K, orientation-insensitive
//   - Framerate: Unknown, Low, Normal, High or Other, with a canonical display rate
//   - Color: a cascade over transfer, primaries, matrix and pixel format
//
// The color cascade is a fold over ordered stages. Each stage inspects the
// metadata and the state produced so far and returns a decision that either
// escalates the tier or keeps it; evidence notes and labels are appended in
// stage order and never deduplicated. Once a stage marks the stream HDR the
// tier is fixed, and no stage can bring a tier back to SDR.
//
// Classify combines the axes into a File with a row severity and a display
// bucket. Everything here is pure: the same metadata always yields the same
// result and nothing is shared between calls.
package classify
