package search_test

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/parse"
	"github.com/specterops/countdown/search"
	"github.com/specterops/countdown/stream"
	"github.com/stretchr/testify/require"
)

// evaluate recomputes a fully parenthesized rendering independently of the expression tree that produced it. A zero
// modulus selects plain integer arithmetic; otherwise every step is reduced modulo modulus and division multiplies by
// an inverse found by search.
func evaluate(t *testing.T, rendered string, modulus int64) int64 {
	var (
		tokens = parse.Tokenize(rendered)
		next   = 0
		term   func() int64
	)

	reduce := func(value int64) int64 {
		if modulus == 0 {
			return value
		}

		return ((value % modulus) + modulus) % modulus
	}

	divide := func(left, right int64) int64 {
		require.NotZero(t, right, rendered)

		if modulus == 0 {
			return left / right
		}

		for inverse := int64(1); inverse < modulus; inverse++ {
			if reduce(right*inverse) == 1 {
				return reduce(left * inverse)
			}
		}

		t.Fatalf("%d has no inverse modulo %d in %s", right, modulus, rendered)
		return 0
	}

	term = func() int64 {
		require.Less(t, next, len(tokens), rendered)
		token := tokens[next]
		next += 1

		if token.Kind == parse.NumberToken {
			value, err := strconv.ParseInt(token.Text, 10, 64)
			require.NoError(t, err)

			return value
		}

		require.Equal(t, "(", token.Text, rendered)
		left := term()

		operator := tokens[next].Text
		next += 1

		right := term()

		require.Equal(t, ")", tokens[next].Text, rendered)
		next += 1

		switch operator {
		case "+":
			return reduce(left + right)
		case "-":
			return reduce(left - right)
		case "*":
			return reduce(left * right)
		case "/":
			return divide(left, right)
		default:
			t.Fatalf("unexpected operator %q in %s", operator, rendered)
			return 0
		}
	}

	value := term()
	require.Equal(t, len(tokens), next, rendered)

	return value
}

func leaves[T arith.Integer](tree *expr.Expression[T]) []T {
	if tree.IsLeaf() {
		return []T{tree.Value()}
	}

	return append(leaves(tree.Left()), leaves(tree.Right())...)
}

func requireCanonical[T arith.Integer](t *testing.T, system arith.NumberSystem[T], tree *expr.Expression[T]) {
	require.True(t, tree.IsValid(), tree.Debug())
	require.True(t, tree.Check(system), tree.Debug())

	if !tree.IsLeaf() {
		require.NotZero(t, tree.Value(), tree.Debug())

		requireCanonical(t, system, tree.Left())
		requireCanonical(t, system, tree.Right())
	}
}

func renderAll[T arith.Integer](trees []*expr.Expression[T]) []string {
	rendered := make([]string, len(trees))

	for idx, tree := range trees {
		rendered[idx] = tree.String()
	}

	return rendered
}

// buffered takes everything a cache holds without waiting for completion.
func buffered[T any](cache *stream.Cache[T]) []T {
	values := make([]T, cache.Len())

	for idx := range values {
		values[idx] = cache.At(idx)
	}

	cache.Clear()
	return values
}

func find[T arith.Integer](t *testing.T, config search.Config[T]) ([]*expr.Expression[T], search.StatsSnapshot) {
	problem, err := config.Problem()
	require.NoError(t, err)

	var (
		sink  = stream.NewCache[*expr.Expression[T]]()
		stats = search.NewStats()
	)

	require.True(t, search.Find[T](problem, sink, stats))

	results := slices.Collect(stream.Iterate[*expr.Expression[T]](sink))
	require.True(t, sink.IsDone())

	return results, stats.Snapshot()
}

func TestBuildTrees(t *testing.T) {
	var (
		system arith.NumberSystem[int] = arith.Ordinary[int]{}
		sink                           = stream.NewCache[*expr.Expression[int]]()
	)

	require.True(t, search.BuildTrees[int]([]int{6, 3}, system, expr.AllOperators, sink))
	require.Equal(t, []string{"6 + 3", "6 - 3", "6 * 3", "6 / 3"}, renderAll(buffered(sink)))

	// The ordinary guard rejects a smaller left operand and nothing here marks the sink done
	require.False(t, sink.IsDone())
	require.True(t, search.BuildTrees[int]([]int{3, 6}, system, expr.AllOperators, sink))
	require.Zero(t, sink.Len())

	require.True(t, search.BuildTrees[int](nil, system, expr.AllOperators, sink))
	require.Zero(t, sink.Len())
}

func TestBuildTreesCanonical(t *testing.T) {
	var (
		system   arith.NumberSystem[int] = arith.Ordinary[int]{}
		sink                             = stream.NewCache[*expr.Expression[int]]()
		sequence                         = []int{9, 7, 5, 3, 2}
		seen                             = map[string]struct{}{}
	)

	require.True(t, search.BuildTrees[int](sequence, system, expr.AllOperators, sink))
	require.Positive(t, sink.Len())

	for _, tree := range buffered(sink) {
		requireCanonical(t, system, tree)

		// Leaves appear in sequence order and every number is used exactly once
		require.Equal(t, sequence, leaves(tree))
		require.Equal(t, int64(tree.Value()), evaluate(t, tree.Parenthesized(), 0))

		_, duplicate := seen[tree.Debug()]
		require.False(t, duplicate, tree.Debug())

		seen[tree.Debug()] = struct{}{}
	}
}

func TestTreeBuilderCache(t *testing.T) {
	var (
		system  arith.NumberSystem[int] = arith.Ordinary[int]{}
		builder                         = search.NewTreeBuilder(system, expr.AllOperators, 16)
	)

	for _, sequence := range [][]int{{9, 7, 5, 3}, {9, 7, 5}, {7, 5, 3}, {9, 7, 5, 3}} {
		var (
			cached = stream.NewCache[*expr.Expression[int]]()
			fresh  = stream.NewCache[*expr.Expression[int]]()
		)

		require.True(t, builder.Build(sequence, cached))
		require.True(t, search.BuildTrees[int](sequence, system, expr.AllOperators, fresh))
		require.Equal(t, renderAll(buffered(fresh)), renderAll(buffered(cached)))
	}

	stats := builder.CacheStats()
	require.Positive(t, stats.Hits())
	require.LessOrEqual(t, stats.Size(), 16)
}

func TestTreeBuilderWithoutCache(t *testing.T) {
	var (
		system  arith.NumberSystem[int] = arith.Ordinary[int]{}
		builder                         = search.NewTreeBuilder(system, expr.AllOperators, 0)
		cached                          = search.NewTreeBuilder(system, expr.AllOperators, 64)
	)

	for _, sequence := range [][]int{{9, 7, 5, 3, 2}, {7, 5, 3}, {9, 7, 5, 3, 2}} {
		var (
			uncachedTrees = stream.NewCache[*expr.Expression[int]]()
			cachedTrees   = stream.NewCache[*expr.Expression[int]]()
		)

		require.True(t, builder.Build(sequence, uncachedTrees))
		require.True(t, cached.Build(sequence, cachedTrees))
		require.Equal(t, renderAll(buffered(cachedTrees)), renderAll(buffered(uncachedTrees)))
	}

	// Nothing is remembered between builds when the cache is disabled
	stats := builder.CacheStats()
	require.Zero(t, stats.Capacity)
	require.Zero(t, stats.Hits())
	require.Zero(t, stats.Misses())
	require.Zero(t, stats.Size())
}

func TestBuildTreesStopsWhenRefused(t *testing.T) {
	var (
		system  arith.NumberSystem[int] = arith.Ordinary[int]{}
		sink                            = stream.NewCache[*expr.Expression[int]]()
		refused                         = 0
		limited                         = refusingSender{
			Sender: sink,
			accept: func() bool {
				refused += 1
				return refused <= 3
			},
		}
	)

	require.False(t, search.BuildTrees[int]([]int{9, 7, 5, 3}, system, expr.AllOperators, limited))
	require.Equal(t, 3, sink.Len())
	require.Equal(t, 4, refused)
}

type refusingSender struct {
	stream.Sender[*expr.Expression[int]]
	accept func() bool
}

func (s refusingSender) Send(value *expr.Expression[int]) bool {
	return s.accept() && s.Sender.Send(value)
}

func TestFindOrdinary(t *testing.T) {
	var (
		system  arith.NumberSystem[int] = arith.Ordinary[int]{}
		results, stats                  = find(t, search.Config[int]{
			Numbers:   []int{5, 4, 3, 2, 1},
			Target:    10,
			Operators: expr.AllOperators,
		})
	)

	require.NotEmpty(t, results)
	require.Equal(t, uint64(len(results)), stats.Matches)
	require.Equal(t, uint64(325), stats.Sequences)
	require.Greater(t, stats.Trees, stats.Matches)

	for _, result := range results {
		require.Equal(t, 10, result.Value())
		requireCanonical(t, system, result)
		require.Equal(t, int64(10), evaluate(t, result.Parenthesized(), 0))

		// Numbers are drawn without replacement
		used := leaves(result)
		require.Subset(t, []int{5, 4, 3, 2, 1}, used)
		require.Len(t, slices.Compact(slices.Sorted(slices.Values(used))), len(used))
	}

	require.Contains(t, renderAll(results), "5 * 2")
}

func TestFindNoZeroResults(t *testing.T) {
	results, stats := find(t, search.Config[int]{
		Numbers:   []int{3, 3},
		Target:    0,
		Operators: expr.NewOperators(expr.Sub),
	})

	require.Empty(t, results)
	require.Zero(t, stats.Matches)
	require.Equal(t, uint64(2), stats.Sequences)
}

func TestFindZeroLeaf(t *testing.T) {
	// A zero source number answers a zero target on its own, but never inside an application
	results, _ := find(t, search.Config[int]{
		Numbers:   []int{0, 3},
		Target:    0,
		Operators: expr.AllOperators,
	})

	require.Equal(t, []string{"0"}, renderAll(results))

	results, _ = find(t, search.Config[int]{
		Numbers:   []int{7, 3},
		Target:    0,
		Modulus:   7,
		Operators: expr.AllOperators,
	})

	require.Equal(t, []string{"0"}, renderAll(results))
}

func TestFindModular(t *testing.T) {
	config := search.Config[int]{
		Numbers:   []int{2, 3},
		Modulus:   7,
		Operators: expr.NewOperators(expr.Div),
	}

	config.Target = 3
	results, _ := find(t, config)
	require.Equal(t, []string{"3", "2 / 3"}, renderAll(results))

	config.Target = 5
	results, _ = find(t, config)
	require.Equal(t, []string{"3 / 2"}, renderAll(results))

	// The target is reduced into the modular range first
	config.Target = 12
	results, _ = find(t, config)
	require.Equal(t, []string{"3 / 2"}, renderAll(results))
}

func TestFindModularComposite(t *testing.T) {
	for target := 0; target < 6; target++ {
		results, _ := find(t, search.Config[int]{
			Numbers:   []int{2, 3},
			Target:    target,
			Modulus:   6,
			Operators: expr.NewOperators(expr.Div),
		})

		for _, result := range results {
			require.True(t, result.IsLeaf(), "division is undefined for a composite modulus: %s", result)
		}
	}
}

func TestFindModularCanonical(t *testing.T) {
	system, err := arith.New(11)
	require.NoError(t, err)

	results, _ := find(t, search.Config[int]{
		Numbers:   []int{2, 3, 5, 7},
		Target:    4,
		Modulus:   11,
		Operators: expr.AllOperators,
	})

	require.NotEmpty(t, results)

	for _, result := range results {
		require.Equal(t, 4, result.Value())
		requireCanonical(t, system, result)
		require.Equal(t, int64(4), evaluate(t, result.Parenthesized(), 11))
	}
}

func TestFindDeterministic(t *testing.T) {
	config := search.Config[uint64]{
		Numbers:   []uint64{1, 2, 3, 4},
		Target:    10,
		Operators: expr.AllOperators,
	}

	first, _ := find(t, config)
	second, _ := find(t, config)

	require.NotEmpty(t, first)
	require.Equal(t, renderAll(first), renderAll(second))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, search.Config[int]{
		Numbers:   []int{1},
		Operators: expr.AllOperators,
	}.Validate())

	err := search.Config[int]{
		Modulus:              -3,
		ChannelCapacity:      -1,
		PollInterval:         -time.Second,
		SubtreeCacheCapacity: -1,
	}.Validate()

	require.ErrorIs(t, err, search.ErrNoNumbers)
	require.ErrorIs(t, err, search.ErrNoOperators)
	require.ErrorIs(t, err, arith.ErrInvalidModulus)
	require.ErrorIs(t, err, search.ErrInvalidCapacity)
	require.ErrorIs(t, err, search.ErrInvalidPollPeriod)
	require.ErrorIs(t, err, search.ErrInvalidCacheSize)
}

func TestConfigProblem(t *testing.T) {
	problem, err := search.Config[int]{
		Numbers:   []int{9, -1, 3},
		Target:    -2,
		Modulus:   7,
		Operators: expr.AllOperators,
	}.Problem()

	require.NoError(t, err)
	require.Equal(t, []int{2, 6, 3}, problem.Numbers)
	require.Equal(t, 5, problem.Target)
	require.Equal(t, "modular(7)", problem.System.String())

	_, err = search.Config[int]{Operators: expr.AllOperators}.Problem()
	require.ErrorIs(t, err, search.ErrNoNumbers)
}

func TestStats(t *testing.T) {
	_, stats := find(t, search.Config[int]{
		Numbers:   []int{6, 3},
		Target:    9,
		Operators: expr.AllOperators,
	})

	require.Equal(t, uint64(4), stats.Sequences)
	require.Equal(t, uint64(6), stats.Trees)
	require.Equal(t, uint64(1), stats.Matches)
	require.InDelta(t, 5, stats.DistinctValues, 1)
}

func TestStart(t *testing.T) {
	running, err := search.Start(context.Background(), search.Config[int]{
		Numbers:         []int{5, 4, 3, 2, 1},
		Target:          10,
		Operators:       expr.AllOperators,
		ChannelCapacity: 2,
		PollInterval:    time.Millisecond,
	})

	require.NoError(t, err)

	var streamed []*expr.Expression[int]

	for result := range running.Results() {
		streamed = append(streamed, result)
	}

	require.NoError(t, running.Wait())

	expected, _ := find(t, search.Config[int]{
		Numbers:   []int{5, 4, 3, 2, 1},
		Target:    10,
		Operators: expr.AllOperators,
	})

	require.Equal(t, renderAll(expected), renderAll(streamed))
	require.Equal(t, uint64(len(streamed)), running.Stats().Matches)
}

func TestStartInvalidConfig(t *testing.T) {
	_, err := search.Start(context.Background(), search.Config[int]{})
	require.ErrorIs(t, err, search.ErrNoNumbers)
}

func TestStartEarlyClose(t *testing.T) {
	running, err := search.Start(context.Background(), search.Config[int]{
		Numbers:         []int{1, 2, 3, 4, 5, 6, 7, 8},
		Target:          8,
		Operators:       expr.AllOperators,
		ChannelCapacity: 1,
	})

	require.NoError(t, err)

	taken := slices.Collect(stream.Iterate(stream.Take(running.Receiver(), 3)))
	require.Len(t, taken, 3)

	closed := make(chan error)

	go func() {
		closed <- running.Close()
	}()

	select {
	case err := <-closed:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("closing the search did not stop the producer")
	}

	require.Less(t, running.Stats().Matches, uint64(1000))
}

func TestStartContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	running, err := search.Start(ctx, search.Config[int]{
		Numbers:   []int{1, 2, 3, 4, 5, 6, 7, 8},
		Target:    8,
		Operators: expr.AllOperators,
	})

	require.NoError(t, err)
	cancel()

	// The stream ends once the producer notices the cancellation
	for range running.Results() {
	}

	require.NoError(t, running.Wait())
}

func ExampleFind() {
	problem, _ := search.Config[int]{
		Numbers:   []int{2, 3},
		Target:    3,
		Modulus:   7,
		Operators: expr.NewOperators(expr.Div),
	}.Problem()

	sink := stream.NewCache[*expr.Expression[int]]()
	search.Find[int](problem, sink, nil)

	for result := range stream.Iterate[*expr.Expression[int]](sink) {
		fmt.Println(result.Value(), result, result.Debug())
	}

	// Output:
	// 3 3 Val 3
	// 3 2 / 3 App Div (Val 2) (Val 3)
}
