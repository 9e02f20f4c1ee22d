package generator

import (
	"slices"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/cardinality"
)

// Multiplicity is one distinct value of a multiset and the number of copies of it.
type Multiplicity[T arith.Integer] struct {
	Value T
	Count int
}

// Count folds a list of values into its multiset form, ordered by ascending value.
func Count[T arith.Integer](values []T) []Multiplicity[T] {
	var (
		counts   = map[T]int{}
		distinct []T
	)

	for _, value := range values {
		if counts[value] == 0 {
			distinct = append(distinct, value)
		}

		counts[value] += 1
	}

	slices.Sort(distinct)

	multiset := make([]Multiplicity[T], len(distinct))

	for idx, value := range distinct {
		multiset[idx] = Multiplicity[T]{
			Value: value,
			Count: counts[value],
		}
	}

	return multiset
}

const noPredecessor = -1

// MultisetPermutations enumerates the orderings of a multiset that are distinct by value. Every copy of a value is
// given a position id and a link to the id of the previous copy of the same value. Orderings of the ids are drawn
// from Permutations and any ordering that places a copy before its predecessor is skipped, so equal values always
// appear in the same relative order and each value sequence is emitted once.
type MultisetPermutations[T arith.Integer] struct {
	values       []T
	predecessors []int
	released     cardinality.Duplex
	permutations *Permutations[int]
}

func NewMultisetPermutations[T arith.Integer](multiset []Multiplicity[T]) *MultisetPermutations[T] {
	var (
		values       []T
		predecessors []int
		positionIDs  []int
	)

	for _, multiplicity := range multiset {
		predecessor := noPredecessor

		for copyIdx := 0; copyIdx < multiplicity.Count; copyIdx++ {
			positionID := len(values)

			values = append(values, multiplicity.Value)
			predecessors = append(predecessors, predecessor)
			positionIDs = append(positionIDs, positionID)

			predecessor = positionID
		}
	}

	return &MultisetPermutations[T]{
		values:       values,
		predecessors: predecessors,
		released:     cardinality.NewBitmap64(),
		permutations: NewPermutations(positionIDs),
	}
}

// canonical walks the ordering front to back and fails as soon as a copy is reached whose predecessor has not yet
// been released.
func (s *MultisetPermutations[T]) canonical(ordering []int) bool {
	s.released.Clear()

	for _, positionID := range ordering {
		if predecessor := s.predecessors[positionID]; predecessor != noPredecessor && !s.released.Contains(uint64(predecessor)) {
			return false
		}

		s.released.Add(uint64(positionID))
	}

	return true
}

// Next returns the next distinct value sequence.
func (s *MultisetPermutations[T]) Next() ([]T, bool) {
	for {
		ordering, hasNext := s.permutations.Next()

		if !hasNext {
			return nil, false
		}

		if !s.canonical(ordering) {
			continue
		}

		sequence := make([]T, len(ordering))

		for idx, positionID := range ordering {
			sequence[idx] = s.values[positionID]
		}

		return sequence, true
	}
}
