// Package tally counts classified files per tier and derives percentages.
//
// Every map in a Tally is fully enumerated at construction so that lookups
// and percentage computation never depend on whether a tier was observed.
// Tallies are plain values: concurrent producers build their own partial
// tally and Merge them afterwards. Addition is commutative, so merge order
// never changes the final counts.
package tally

import (
	"math"
	"sort"

	"vidaudit/internal/classify"
)

// Tally holds the per-axis counters of one batch.
type Tally struct {
	Total       int                             `json:"total"`
	Resolution  map[classify.ResolutionTier]int `json:"resolution"`
	Framerate   map[classify.FramerateTier]int  `json:"framerate"`
	ColorTiers  map[classify.ColorTier]int      `json:"color_tiers"`
	Buckets     map[classify.Bucket]int         `json:"buckets"`
	HDR         int                             `json:"hdr"`
	OtherColor  int                             `json:"other_color"`
	RAW         int                             `json:"raw"`
	DolbyVision int                             `json:"dolby_vision"`
}

// New returns an empty tally with every tier present at zero.
func New() *Tally {
	t := &Tally{
		Resolution: make(map[classify.ResolutionTier]int, len(classify.ResolutionTiers)),
		Framerate:  make(map[classify.FramerateTier]int, len(classify.FramerateTiers)),
		ColorTiers: make(map[classify.ColorTier]int, len(classify.ColorTiers)),
		Buckets:    make(map[classify.Bucket]int, len(classify.Buckets)),
	}
	for _, tier := range classify.ResolutionTiers {
		t.Resolution[tier] = 0
	}
	for _, tier := range classify.FramerateTiers {
		t.Framerate[tier] = 0
	}
	for _, tier := range classify.ColorTiers {
		t.ColorTiers[tier] = 0
	}
	for _, bucket := range classify.Buckets {
		t.Buckets[bucket] = 0
	}
	return t
}

// Add counts one classified file: exactly one tier per axis.
func (t *Tally) Add(f classify.File) {
	t.Total++
	t.Resolution[f.Resolution.Tier]++
	t.Framerate[f.Framerate.Tier]++
	t.ColorTiers[f.Color.Tier]++
	t.Buckets[f.Bucket]++
	switch {
	case f.Color.HDR:
		t.HDR++
	case f.Color.OtherNonStandard:
		t.OtherColor++
	}
	if f.RAW {
		t.RAW++
	}
	if f.Color.DolbyVision {
		t.DolbyVision++
	}
}

// Merge adds other's counters into t.
func (t *Tally) Merge(other *Tally) {
	if other == nil {
		return
	}
	t.Total += other.Total
	t.HDR += other.HDR
	t.OtherColor += other.OtherColor
	t.RAW += other.RAW
	t.DolbyVision += other.DolbyVision
	for tier, n := range other.Resolution {
		t.Resolution[tier] += n
	}
	for tier, n := range other.Framerate {
		t.Framerate[tier] += n
	}
	for tier, n := range other.ColorTiers {
		t.ColorTiers[tier] += n
	}
	for bucket, n := range other.Buckets {
		t.Buckets[bucket] += n
	}
}

// Aggregate tallies a whole batch. The result does not depend on order.
func Aggregate(files []classify.File) *Tally {
	t := New()
	for _, f := range files {
		t.Add(f)
	}
	return t
}

// SDR is derived from the other colour counters and never stored.
func (t *Tally) SDR() int {
	return t.Total - t.HDR - t.OtherColor
}

// Percentages is the percentage view of a tally, one decimal per value.
type Percentages struct {
	Resolution map[classify.ResolutionTier]float64 `json:"resolution"`
	Framerate  map[classify.FramerateTier]float64  `json:"framerate"`
	SDR        float64                             `json:"sdr"`
	HDR        float64                             `json:"hdr"`
	OtherColor float64                             `json:"other_color"`
}

// Percentages computes count/total*100 at one decimal for every tier. Each
// axis is apportioned by largest remainder so that its values sum to exactly
// 100 while every value stays within 0.1 of the exact share. An empty tally
// yields zero everywhere.
func (t *Tally) Percentages() Percentages {
	p := Percentages{
		Resolution: make(map[classify.ResolutionTier]float64, len(classify.ResolutionTiers)),
		Framerate:  make(map[classify.FramerateTier]float64, len(classify.FramerateTiers)),
	}

	res := make([]int, len(classify.ResolutionTiers))
	for i, tier := range classify.ResolutionTiers {
		res[i] = t.Resolution[tier]
	}
	for i, v := range Apportion(res, t.Total) {
		p.Resolution[classify.ResolutionTiers[i]] = v
	}

	fps := make([]int, len(classify.FramerateTiers))
	for i, tier := range classify.FramerateTiers {
		fps[i] = t.Framerate[tier]
	}
	for i, v := range Apportion(fps, t.Total) {
		p.Framerate[classify.FramerateTiers[i]] = v
	}

	color := Apportion([]int{t.SDR(), t.HDR, t.OtherColor}, t.Total)
	p.SDR, p.HDR, p.OtherColor = color[0], color[1], color[2]
	return p
}

// Percent returns count/total*100 rounded to one decimal, or 0 when total
// is not positive.
func Percent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Apportion converts counts that partition total into one-decimal
// percentages summing to exactly 100. Tenths left over after flooring go to
// the largest remainders; ties go to the earlier entry. Counts that do not
// add up to total fall back to rounding each value with Percent.
func Apportion(counts []int, total int) []float64 {
	out := make([]float64, len(counts))
	if total <= 0 {
		return out
	}
	sum := 0
	for _, c := range counts {
		if c < 0 {
			sum = -1
			break
		}
		sum += c
	}
	if sum != total {
		for i, c := range counts {
			out[i] = Percent(c, total)
		}
		return out
	}

	tenths := make([]int, len(counts))
	remainders := make([]int, len(counts))
	left := 1000
	for i, c := range counts {
		tenths[i] = c * 1000 / total
		remainders[i] = c * 1000 % total
		left -= tenths[i]
	}
	order := make([]int, len(counts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]] > remainders[order[b]]
	})
	for _, i := range order[:left] {
		tenths[i]++
	}
	for i, v := range tenths {
		out[i] = float64(v) / 10
	}
	return out
}
