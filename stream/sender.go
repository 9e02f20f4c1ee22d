package stream

// Sender is the producing half of a result stream.
type Sender[T any] interface {
	// Send delivers value downstream. A false return means the downstream no longer accepts values; callers may stop
	// producing or keep going, but must not treat it as an error.
	Send(value T) bool

	// SetDone marks that no further values will be sent. Calling it more than once has no further effect.
	SetDone()
}

type mapSender[U, T any] struct {
	sender   Sender[T]
	delegate func(value U) T
}

// MapSender transforms each value with delegate before handing it to sender.
func MapSender[U, T any](sender Sender[T], delegate func(value U) T) Sender[U] {
	return mapSender[U, T]{
		sender:   sender,
		delegate: delegate,
	}
}

func (s mapSender[U, T]) Send(value U) bool {
	return s.sender.Send(s.delegate(value))
}

func (s mapSender[U, T]) SetDone() {
	s.sender.SetDone()
}

type filterSender[T any] struct {
	sender    Sender[T]
	predicate func(value T) bool
}

// FilterSender forwards only the values that satisfy predicate. Dropped values still count as accepted.
func FilterSender[T any](sender Sender[T], predicate func(value T) bool) Sender[T] {
	return filterSender[T]{
		sender:    sender,
		predicate: predicate,
	}
}

func (s filterSender[T]) Send(value T) bool {
	if s.predicate(value) {
		return s.sender.Send(value)
	}

	return true
}

func (s filterSender[T]) SetDone() {
	s.sender.SetDone()
}

type blockedSender[T any] struct {
	sender Sender[T]
}

// Blocked forwards values to sender but swallows SetDone, so that a nested producer finishing its share of the work
// cannot close a stream that is shared with other producers.
func Blocked[T any](sender Sender[T]) Sender[T] {
	return blockedSender[T]{
		sender: sender,
	}
}

func (s blockedSender[T]) Send(value T) bool {
	return s.sender.Send(value)
}

func (s blockedSender[T]) SetDone() {}
