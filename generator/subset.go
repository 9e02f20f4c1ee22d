package generator

import (
	"slices"

	"github.com/specterops/countdown/arith"
)

// Subsets enumerates every non-empty sub-multiset of a multiset. The selection is kept as a mixed radix counter with
// one digit per distinct value, digit i running from 0 to the multiplicity of value i. Each step increments the
// least significant digit that is not yet saturated and zeroes every digit to its right, so every combination is
// visited exactly once. The last digit is the least significant.
type Subsets[T arith.Integer] struct {
	multiset []Multiplicity[T]
	digits   []int
}

func NewSubsets[T arith.Integer](multiset []Multiplicity[T]) *Subsets[T] {
	return &Subsets[T]{
		multiset: multiset,
		digits:   make([]int, len(multiset)),
	}
}

// Next returns the next selection. Only values taken at least once appear in the returned multiset.
func (s *Subsets[T]) Next() ([]Multiplicity[T], bool) {
	digitIdx := len(s.digits) - 1

	for ; digitIdx >= 0; digitIdx-- {
		if s.digits[digitIdx] < s.multiset[digitIdx].Count {
			break
		}
	}

	if digitIdx < 0 {
		return nil, false
	}

	for idx := digitIdx + 1; idx < len(s.digits); idx++ {
		s.digits[idx] = 0
	}

	s.digits[digitIdx] += 1

	var selection []Multiplicity[T]

	for idx, taken := range s.digits {
		if taken > 0 {
			selection = append(selection, Multiplicity[T]{
				Value: s.multiset[idx].Value,
				Count: taken,
			})
		}
	}

	return selection, true
}

// Size returns the number of values drawn by a selection.
func Size[T arith.Integer](selection []Multiplicity[T]) int {
	size := 0

	for _, multiplicity := range selection {
		size += multiplicity.Count
	}

	return size
}

// SubsetsBySize collects every non-empty sub-multiset ordered by ascending size. Selections of equal size keep their
// counter order.
func SubsetsBySize[T arith.Integer](multiset []Multiplicity[T]) [][]Multiplicity[T] {
	var (
		subsets   = NewSubsets(multiset)
		selection []Multiplicity[T]
		selected  [][]Multiplicity[T]
	)

	for hasNext := true; hasNext; {
		if selection, hasNext = subsets.Next(); hasNext {
			selected = append(selected, selection)
		}
	}

	slices.SortStableFunc(selected, func(a, b []Multiplicity[T]) int {
		return Size(a) - Size(b)
	})

	return selected
}
