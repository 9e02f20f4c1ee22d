package search

import (
	"encoding/binary"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/cache"
	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/stream"
)

// TreeBuilder enumerates the canonical expression trees over an ordered operand sequence. The trees of each inner
// operand run are built into a left and a right buffer that are cleared after every split point, so memory is bounded
// by the sequence length times the trees of one run.
//
// With a positive cache capacity the trees of inner runs are also remembered in a bounded SIEVE cache keyed by the
// run. This trades memory for not rebuilding runs that recur across splits and across sequences. Built trees are
// immutable, so remembered subtrees are shared by every tree that contains them.
//
// A TreeBuilder is not safe for concurrent use.
type TreeBuilder[T arith.Integer] struct {
	system    arith.NumberSystem[T]
	operators []expr.Operator
	subtrees  cache.Cache[string, []*expr.Expression[T]]
	key       []byte
}

// NewTreeBuilder creates a builder. A cacheCapacity of zero or less disables the subtree cache.
func NewTreeBuilder[T arith.Integer](system arith.NumberSystem[T], operators expr.Operators, cacheCapacity int) *TreeBuilder[T] {
	builder := &TreeBuilder[T]{
		system:    system,
		operators: operators.Slice(),
	}

	if cacheCapacity > 0 {
		builder.subtrees = cache.NewSieve[string, []*expr.Expression[T]](cacheCapacity)
	}

	return builder
}

// CacheStats returns the subtree cache counters. All counters are zero when the cache is disabled.
func (s *TreeBuilder[T]) CacheStats() cache.Stats {
	if s.subtrees == nil {
		return cache.NewStats(0)
	}

	return s.subtrees.Stats()
}

func (s *TreeBuilder[T]) cacheKey(sequence []T) string {
	s.key = s.key[:0]

	for _, value := range sequence {
		s.key = binary.LittleEndian.AppendUint64(s.key, uint64(value))
	}

	return string(s.key)
}

// Build sends every canonical tree over the fixed operand order of sequence to sender: every bracketing of the
// sequence with every allowed operator at every internal node. Nodes the number system leaves undefined, nodes
// evaluating to zero and right nested chains of the same associative operator are pruned.
//
// Build never calls SetDone on sender. The return is false if sender stopped accepting values, in which case the
// enumeration was abandoned part way.
func (s *TreeBuilder[T]) Build(sequence []T, sender stream.Sender[*expr.Expression[T]]) bool {
	switch len(sequence) {
	case 0:
		return true

	case 1:
		return sender.Send(expr.NewLeaf(sequence[0]))
	}

	var (
		left  = stream.NewCache[*expr.Expression[T]]()
		right = stream.NewCache[*expr.Expression[T]]()
	)

	for split := 1; split < len(sequence); split++ {
		s.subtreesInto(sequence[:split], left)
		s.subtreesInto(sequence[split:], right)

		for leftIdx := 0; leftIdx < left.Len(); leftIdx++ {
			leftTree := left.At(leftIdx)

			for rightIdx := 0; rightIdx < right.Len(); rightIdx++ {
				rightTree := right.At(rightIdx)

				for _, operator := range s.operators {
					if tree, ok := expr.Apply(s.system, operator, leftTree, rightTree); ok && tree.IsValid() {
						if !sender.Send(tree) {
							return false
						}
					}
				}
			}
		}

		left.Clear()
		right.Clear()
	}

	return true
}

// subtreesInto sends every canonical tree over sequence to buffer, going through the subtree cache when it is
// enabled.
func (s *TreeBuilder[T]) subtreesInto(sequence []T, buffer *stream.Cache[*expr.Expression[T]]) {
	if s.subtrees == nil || len(sequence) == 1 {
		s.Build(sequence, buffer)
		return
	}

	key := s.cacheKey(sequence)

	if trees, cached := s.subtrees.Get(key); cached {
		for _, tree := range trees {
			buffer.Send(tree)
		}

		return
	}

	s.Build(sequence, buffer)

	trees := make([]*expr.Expression[T], buffer.Len())

	for idx := range trees {
		trees[idx] = buffer.At(idx)
	}

	s.subtrees.Put(key, trees)
}

// BuildTrees runs a single use TreeBuilder without a subtree cache over sequence. See TreeBuilder.Build.
func BuildTrees[T arith.Integer](sequence []T, system arith.NumberSystem[T], operators expr.Operators, sender stream.Sender[*expr.Expression[T]]) bool {
	return NewTreeBuilder(system, operators, 0).Build(sequence, sender)
}
