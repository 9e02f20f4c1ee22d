package search

import (
	"log/slog"
	"sync/atomic"

	"github.com/specterops/countdown/cardinality"
)

// Stats counts the work done by a search. It is safe to read while the search is running.
type Stats struct {
	sequences *atomic.Uint64
	trees     *atomic.Uint64
	matches   *atomic.Uint64
	values    cardinality.Provider
}

func NewStats() *Stats {
	return &Stats{
		sequences: &atomic.Uint64{},
		trees:     &atomic.Uint64{},
		matches:   &atomic.Uint64{},
		values:    cardinality.Synchronized(cardinality.NewHyperLogLog64()),
	}
}

// StatsSnapshot is a point in time copy of Stats. Trees counts complete trees, those that use every number of their
// sequence, and DistinctValues is an estimate of how many different values those trees evaluated to.
type StatsSnapshot struct {
	Sequences      uint64
	Trees          uint64
	Matches        uint64
	DistinctValues uint64
}

func (s StatsSnapshot) LogAttrs() []any {
	return []any{
		slog.Uint64("sequences", s.Sequences),
		slog.Uint64("trees", s.Trees),
		slog.Uint64("matches", s.Matches),
		slog.Uint64("distinct_values", s.DistinctValues),
	}
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Sequences:      s.sequences.Load(),
		Trees:          s.trees.Load(),
		Matches:        s.matches.Load(),
		DistinctValues: s.values.Cardinality(),
	}
}
