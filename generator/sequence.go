package generator

import "github.com/specterops/countdown/arith"

// Sequences produces every distinct ordered sequence that can be drawn from a list of values: every non-empty
// sub-multiset, smallest first, and every value-distinct ordering of each.
type Sequences[T arith.Integer] struct {
	subsets      [][]Multiplicity[T]
	subsetIdx    int
	permutations *MultisetPermutations[T]
}

func NewSequences[T arith.Integer](values []T) *Sequences[T] {
	return &Sequences[T]{
		subsets: SubsetsBySize(Count(values)),
	}
}

// NumSubsets returns the number of sub-multisets this generator will visit.
func (s *Sequences[T]) NumSubsets() int {
	return len(s.subsets)
}

func (s *Sequences[T]) Next() ([]T, bool) {
	for {
		if s.permutations == nil {
			if s.subsetIdx >= len(s.subsets) {
				return nil, false
			}

			s.permutations = NewMultisetPermutations(s.subsets[s.subsetIdx])
			s.subsetIdx += 1
		}

		if sequence, hasNext := s.permutations.Next(); hasNext {
			return sequence, true
		}

		s.permutations = nil
	}
}
