package search

import (
	"log/slog"

	"github.com/specterops/countdown/arith"
	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/generator"
	"github.com/specterops/countdown/stream"
	"github.com/specterops/countdown/util"
)

// Find enumerates every ordered sequence drawn from the problem's numbers, builds every canonical tree over each and
// forwards the trees whose value equals the target to sender. SetDone is called on sender exactly once, after the
// last sequence or as soon as sender stops accepting values. The return is false if the search stopped early.
//
// Work counters are recorded into stats, which may be nil.
func Find[T arith.Integer](problem Problem[T], sender stream.Sender[*expr.Expression[T]], stats *Stats) bool {
	if stats == nil {
		stats = NewStats()
	}

	var (
		measure = util.SLogMeasureFunction("search.Find",
			slog.String("system", problem.System.String()),
			slog.Int("numbers", len(problem.Numbers)),
			slog.String("operators", problem.Operators.String()),
		)

		forwarded = stream.MapSender(sender, func(tree *expr.Expression[T]) *expr.Expression[T] {
			stats.matches.Add(1)
			return tree
		})

		matching = stream.FilterSender(forwarded, func(tree *expr.Expression[T]) bool {
			return tree.Value() == problem.Target
		})

		observed = stream.MapSender(matching, func(tree *expr.Expression[T]) *expr.Expression[T] {
			stats.trees.Add(1)
			stats.values.Add(uint64(tree.Value()))

			return tree
		})

		// Each sequence's tree enumeration must not complete the shared stream
		perSequence = stream.Blocked(observed)
		builder     = NewTreeBuilder(problem.System, problem.Operators, problem.SubtreeCacheCapacity)
		sequences   = generator.NewSequences(problem.Numbers)
		completed   = true
	)

	for sequence, hasNext := sequences.Next(); hasNext; sequence, hasNext = sequences.Next() {
		stats.sequences.Add(1)

		if !builder.Build(sequence, perSequence) {
			slog.Debug("Search abandoned: result sender stopped accepting expressions")
			completed = false
			break
		}
	}

	sender.SetDone()

	logAttrs := append(stats.Snapshot().LogAttrs(), builder.CacheStats().LogAttrs()...)
	measure(append(logAttrs, slog.Bool("completed", completed))...)
	return completed
}
