package stream

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/specterops/countdown/util/channels"
)

const (
	DefaultChannelCapacity = 10
	DefaultPollInterval    = 10 * time.Millisecond
)

// ChannelSender is the producing half of a bounded stream between two goroutines. Send blocks while the channel is
// full, which is the only backpressure in the pipeline. It must only be used from a single producer goroutine.
type ChannelSender[T any] struct {
	ctx       context.Context
	values    chan T
	closeOnce *sync.Once
	done      bool
}

func (s *ChannelSender[T]) Send(value T) bool {
	if s.done || s.ctx.Err() != nil {
		return false
	}

	if !channels.Submit(s.ctx, s.values, value) {
		slog.Debug("Result receiver disconnected")
		return false
	}

	return true
}

func (s *ChannelSender[T]) SetDone() {
	s.done = true
	s.closeOnce.Do(func() {
		close(s.values)
	})
}

// ChannelReceiver is the consuming half of a bounded stream between two goroutines. Receive waits up to the poll
// interval for a value before reporting that nothing is ready.
type ChannelReceiver[T any] struct {
	values       <-chan T
	pollInterval time.Duration
	cancel       context.CancelFunc
	done         bool
}

func (s *ChannelReceiver[T]) Receive() (T, bool) {
	var empty T

	if s.done {
		return empty, false
	}

	switch value, result := channels.ReceiveTimeout(s.values, s.pollInterval); result {
	case channels.Received:
		return value, true

	case channels.Closed:
		s.done = true
	}

	return empty, false
}

func (s *ChannelReceiver[T]) IsDone() bool {
	return s.done
}

// Close stops accepting values. Any blocked or future Send on the paired sender returns false.
func (s *ChannelReceiver[T]) Close() {
	s.done = true
	s.cancel()
}

// NewChannel creates a bounded stream holding at most capacity undelivered values. Non-positive capacity and poll
// interval select the defaults. Cancelling ctx has the same effect as closing the receiver.
func NewChannel[T any](ctx context.Context, capacity int, pollInterval time.Duration) (*ChannelSender[T], *ChannelReceiver[T]) {
	if capacity <= 0 {
		capacity = DefaultChannelCapacity
	}

	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	var (
		channelCtx, cancel = context.WithCancel(ctx)
		values             = make(chan T, capacity)
	)

	return &ChannelSender[T]{
			ctx:       channelCtx,
			values:    values,
			closeOnce: &sync.Once{},
		}, &ChannelReceiver[T]{
			values:       values,
			pollInterval: pollInterval,
			cancel:       cancel,
		}
}
