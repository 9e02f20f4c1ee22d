package generator

// Permutations enumerates every ordering of a sequence with the iterative form of Heap's algorithm. Each step after
// the first differs from the previous ordering by a single swap. No attempt is made to suppress orderings that are
// equal by value; see MultisetPermutations for that.
//
// A Permutations instance is single use: once Next returns false it stays exhausted.
type Permutations[T any] struct {
	items    []T
	counters []int
	index    int
	started  bool
}

func NewPermutations[T any](items []T) *Permutations[T] {
	itemsCopy := make([]T, len(items))
	copy(itemsCopy, items)

	return &Permutations[T]{
		items:    itemsCopy,
		counters: make([]int, len(items)),
	}
}

func (s *Permutations[T]) emit() []T {
	ordering := make([]T, len(s.items))
	copy(ordering, s.items)

	return ordering
}

// Next returns the next ordering as a freshly allocated slice. The first call returns the input order unchanged.
func (s *Permutations[T]) Next() ([]T, bool) {
	if !s.started {
		s.started = true
		s.index = 1

		return s.emit(), true
	}

	for s.index < len(s.items) {
		if s.counters[s.index] < s.index {
			if s.index%2 == 0 {
				s.items[0], s.items[s.index] = s.items[s.index], s.items[0]
			} else {
				s.items[s.counters[s.index]], s.items[s.index] = s.items[s.index], s.items[s.counters[s.index]]
			}

			s.counters[s.index] += 1
			s.index = 1

			return s.emit(), true
		}

		s.counters[s.index] = 0
		s.index += 1
	}

	return nil, false
}
