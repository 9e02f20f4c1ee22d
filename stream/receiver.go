package stream

import (
	"iter"

	"github.com/specterops/countdown/util/atomics"
)

// Receiver is the consuming half of a result stream. A false return from Receive means either that nothing is ready
// yet or that nothing ever will be; IsDone tells the two apart.
type Receiver[T any] interface {
	Receive() (T, bool)
	IsDone() bool
}

type mapReceiver[T, U any] struct {
	receiver Receiver[T]
	delegate func(value T) U
}

// MapReceiver transforms each received value with delegate.
func MapReceiver[T, U any](receiver Receiver[T], delegate func(value T) U) Receiver[U] {
	return mapReceiver[T, U]{
		receiver: receiver,
		delegate: delegate,
	}
}

func (s mapReceiver[T, U]) Receive() (U, bool) {
	if value, ok := s.receiver.Receive(); ok {
		return s.delegate(value), true
	}

	var empty U
	return empty, false
}

func (s mapReceiver[T, U]) IsDone() bool {
	return s.receiver.IsDone()
}

type filterReceiver[T any] struct {
	receiver  Receiver[T]
	predicate func(value T) bool
}

// FilterReceiver discards received values that fail predicate. A discarded value reads as "nothing ready yet".
func FilterReceiver[T any](receiver Receiver[T], predicate func(value T) bool) Receiver[T] {
	return filterReceiver[T]{
		receiver:  receiver,
		predicate: predicate,
	}
}

func (s filterReceiver[T]) Receive() (T, bool) {
	if value, ok := s.receiver.Receive(); ok && s.predicate(value) {
		return value, true
	}

	var empty T
	return empty, false
}

func (s filterReceiver[T]) IsDone() bool {
	return s.receiver.IsDone()
}

type takeReceiver[T any] struct {
	receiver Receiver[T]
	limit    atomics.Limit
	claimed  bool
	taken    bool
}

// Take yields at most limit values from receiver and then reports done. No value beyond the limit is pulled from the
// underlying receiver.
func Take[T any](receiver Receiver[T], limit uint64) Receiver[T] {
	return &takeReceiver[T]{
		receiver: receiver,
		limit:    atomics.NewLimit(limit),
	}
}

func (s *takeReceiver[T]) Receive() (T, bool) {
	var empty T

	if s.taken {
		return empty, false
	}

	// Claim a slot before pulling so that the value after the limit stays with the underlying receiver
	if !s.claimed {
		if !s.limit.Claim() {
			s.taken = true
			return empty, false
		}

		s.claimed = true
	}

	value, ok := s.receiver.Receive()

	if !ok {
		return empty, false
	}

	s.claimed = false
	return value, true
}

func (s *takeReceiver[T]) IsDone() bool {
	return s.taken || (!s.claimed && s.limit.Exhausted()) || s.receiver.IsDone()
}

// Iterate turns polling of receiver into a blocking pull sequence. The sequence ends once the receiver reports done
// and nothing more is pending.
func Iterate[T any](receiver Receiver[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for !receiver.IsDone() {
			if value, ok := receiver.Receive(); ok && !yield(value) {
				return
			}
		}
	}
}
