package stream

import (
	"github.com/gammazero/deque"
)

// Cache is an in-memory stream that buffers every sent value until it is received. It implements both Sender and
// Receiver, and also allows indexed access to the pending values so they can be read more than once. Cache is not
// safe for concurrent use; see NewChannel for a stream that crosses goroutines.
type Cache[T any] struct {
	values deque.Deque[T]
	done   bool
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{}
}

func (s *Cache[T]) Send(value T) bool {
	s.values.PushBack(value)
	return true
}

func (s *Cache[T]) SetDone() {
	s.done = true
}

func (s *Cache[T]) Receive() (T, bool) {
	if s.values.Len() == 0 {
		var empty T
		return empty, false
	}

	return s.values.PopFront(), true
}

func (s *Cache[T]) IsDone() bool {
	return s.done && s.values.Len() == 0
}

// Len returns the number of pending values.
func (s *Cache[T]) Len() int {
	return s.values.Len()
}

// At returns the pending value at idx without removing it. The front of the cache is index 0.
func (s *Cache[T]) At(idx int) T {
	return s.values.At(idx)
}

// Clear drops every pending value. The done state is left as is.
func (s *Cache[T]) Clear() {
	s.values.Clear()
}
