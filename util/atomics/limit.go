package atomics

import "sync/atomic"

// Limit hands out at most a fixed number of claims. Claims are taken with compare-and-swap so that concurrent
// callers can never claim more than the maximum between them.
type Limit struct {
	claimed *atomic.Uint64
	maximum uint64
}

func NewLimit(maximum uint64) Limit {
	return Limit{
		claimed: &atomic.Uint64{},
		maximum: maximum,
	}
}

// Claim takes one slot and reports whether one was left.
func (s Limit) Claim() bool {
	for claimed := s.claimed.Load(); claimed < s.maximum; claimed = s.claimed.Load() {
		if s.claimed.CompareAndSwap(claimed, claimed+1) {
			return true
		}
	}

	return false
}

func (s Limit) Claimed() uint64 {
	return s.claimed.Load()
}

func (s Limit) Exhausted() bool {
	return s.claimed.Load() >= s.maximum
}
