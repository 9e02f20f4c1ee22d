package search

import (
	"context"
	"iter"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/stream"
	"golang.org/x/sync/errgroup"
)

// Search is a running background search. The producer goroutine runs Find and hands matching expressions to the
// consumer through a bounded channel; results arrive in the deterministic order the producer found them.
type Search[T arith.Integer] struct {
	receiver *stream.ChannelReceiver[*expr.Expression[T]]
	stats    *Stats
	group    *errgroup.Group
}

// Start validates config and launches the search on its own goroutine. Cancelling ctx or calling Close stops the
// producer at its next send.
func Start[T arith.Integer](ctx context.Context, config Config[T]) (*Search[T], error) {
	problem, err := config.Problem()
	if err != nil {
		return nil, err
	}

	var (
		sender, receiver = stream.NewChannel[*expr.Expression[T]](ctx, config.ChannelCapacity, config.PollInterval)
		stats            = NewStats()
		group            = &errgroup.Group{}
	)

	group.Go(func() error {
		Find(problem, stream.Sender[*expr.Expression[T]](sender), stats)
		return nil
	})

	return &Search[T]{
		receiver: receiver,
		stats:    stats,
		group:    group,
	}, nil
}

// Receiver exposes the consuming side of the result stream.
func (s *Search[T]) Receiver() stream.Receiver[*expr.Expression[T]] {
	return s.receiver
}

// Results yields matching expressions as they are found and ends when the search completes.
func (s *Search[T]) Results() iter.Seq[*expr.Expression[T]] {
	return stream.Iterate[*expr.Expression[T]](s.receiver)
}

func (s *Search[T]) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}

// Wait blocks until the producer goroutine has exited.
func (s *Search[T]) Wait() error {
	return s.group.Wait()
}

// Close stops accepting results and waits for the producer goroutine to exit.
func (s *Search[T]) Close() error {
	s.receiver.Close()
	return s.group.Wait()
}
