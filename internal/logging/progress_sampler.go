package logging

import "sync"

// ProgressSampler thins per-file progress into one log line per percentage
// bucket. It is safe for concurrent use by the workers of one batch; each
// batch gets its own sampler.
type ProgressSampler struct {
	mu         sync.Mutex
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler that emits when the completed
// fraction crosses a bucket boundary (default 10%).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether done of total should be logged. The final file
// is always logged; a nil sampler logs everything.
func (s *ProgressSampler) ShouldLog(done, total int) bool {
	if s == nil {
		return true
	}
	if total <= 0 {
		return false
	}
	if done >= total {
		return true
	}
	bucket := int(float64(done) / float64(total) * 100 / s.bucketSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return true
	}
	return false
}
