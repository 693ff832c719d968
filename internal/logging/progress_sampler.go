package logging

// ProgressSampler suppresses repetitive progress logs, emitting only when the
// percentage crosses a bucket boundary.
type ProgressSampler struct {
	bucketSize float64
	lastBucket int
}

// NewProgressSampler constructs a sampler with the given bucket width in
// percent (default 10).
func NewProgressSampler(bucketSize float64) *ProgressSampler {
	if bucketSize <= 0 {
		bucketSize = 10
	}
	return &ProgressSampler{bucketSize: bucketSize, lastBucket: -1}
}

// ShouldLog reports whether a progress update at percent should be logged.
// Negative percentages mean the total is unknown and are never logged.
func (s *ProgressSampler) ShouldLog(percent float64) bool {
	if s == nil {
		return true
	}
	if percent < 0 {
		return false
	}
	if percent > 100 {
		percent = 100
	}
	bucket := int(percent / s.bucketSize)
	if bucket > s.lastBucket {
		s.lastBucket = bucket
		return true
	}
	return false
}

// Reset clears the sampler state.
func (s *ProgressSampler) Reset() {
	if s != nil {
		s.lastBucket = -1
	}
}
