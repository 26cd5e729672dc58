package scene

import (
	"math"
	"sync/atomic"
)

// ScrollSlot holds the latest scroll progress in [0,1]. Producers may store
// from any goroutine; the loop reads the newest value each tick. Updates
// overwrite each other and are never queued.
type ScrollSlot struct {
	bits atomic.Uint64
}

// Store sets the progress, clamped to [0,1]. NaN is ignored.
func (s *ScrollSlot) Store(p float64) {
	if math.IsNaN(p) {
		return
	}
	s.bits.Store(math.Float64bits(clampProgress(p)))
}

// Load returns the latest progress.
func (s *ScrollSlot) Load() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Add moves the progress by delta, clamped to [0,1], and returns the result.
func (s *ScrollSlot) Add(delta float64) float64 {
	for {
		old := s.bits.Load()
		next := clampProgress(math.Float64frombits(old) + delta)
		if s.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

func clampProgress(p float64) float64 {
	return min(max(p, 0), 1)
}
