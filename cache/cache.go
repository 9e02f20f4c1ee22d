package cache

import (
	"log/slog"
	"sync/atomic"
)

// Stats counts cache traffic. Copies share the same counters.
type Stats struct {
	hits      *atomic.Uint64
	misses    *atomic.Uint64
	evictions *atomic.Uint64
	size      *atomic.Int64
	Capacity  int
}

func NewStats(capacity int) Stats {
	return Stats{
		hits:      &atomic.Uint64{},
		misses:    &atomic.Uint64{},
		evictions: &atomic.Uint64{},
		size:      &atomic.Int64{},
		Capacity:  capacity,
	}
}

func (s Stats) Hits() uint64 {
	return s.hits.Load()
}

func (s Stats) Misses() uint64 {
	return s.misses.Load()
}

func (s Stats) Evictions() uint64 {
	return s.evictions.Load()
}

func (s Stats) Size() int {
	return int(s.size.Load())
}

func (s Stats) LogAttrs() []any {
	return []any{
		slog.Uint64("cache_hits", s.Hits()),
		slog.Uint64("cache_misses", s.Misses()),
		slog.Uint64("cache_evictions", s.Evictions()),
		slog.Int("cache_size", s.Size()),
		slog.Int("cache_capacity", s.Capacity),
	}
}

func (s Stats) hit() {
	s.hits.Add(1)
}

func (s Stats) miss() {
	s.misses.Add(1)
}

func (s Stats) put() {
	s.size.Add(1)
}

func (s Stats) evict() {
	s.evictions.Add(1)
	s.size.Add(-1)
}

// Cache is a bounded key value store that may drop entries to make room for new ones.
type Cache[K comparable, V any] interface {
	Put(key K, value V)
	Get(key K) (V, bool)
	Stats() Stats
}
