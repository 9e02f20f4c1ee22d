package channels

import (
	"context"
	"time"
)

// Submit writes value to the channel, blocking until the channel accepts it or the context is done. Returns false if
// the context expired before the value was accepted.
func Submit[T any](ctx context.Context, channel chan<- T, value T) bool {
	select {
	case channel <- value:
		return true

	case <-ctx.Done():
		return false
	}
}

// ReceiveResult describes the outcome of ReceiveTimeout.
type ReceiveResult int

const (
	Received ReceiveResult = iota
	TimedOut
	Closed
)

// ReceiveTimeout reads the next value from the channel, waiting at most timeout for one to arrive.
func ReceiveTimeout[T any](channel <-chan T, timeout time.Duration) (T, ReceiveResult) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case value, ok := <-channel:
		if !ok {
			return value, Closed
		}

		return value, Received

	case <-timer.C:
		var empty T
		return empty, TimedOut
	}
}
