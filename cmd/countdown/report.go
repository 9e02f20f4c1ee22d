package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/specterops/countdown/expr"
	"github.com/specterops/countdown/search"
	"github.com/specterops/countdown/stream"
	"github.com/specterops/countdown/util"
)

type reportOptions struct {
	out   io.Writer
	err   io.Writer
	show  int
	limit uint64
}

func plural(count int) string {
	if count == 1 {
		return "expression"
	}

	return "expressions"
}

// run streams the search results, reporting timing on the error writer and the first results on the output writer
// as tab separated value, display and debug columns.
func run(ctx context.Context, config search.Config[uint64], report reportOptions) error {
	var (
		start    = time.Now()
		progress = util.SLogSampleEvery("countdown", progressInterval)
	)

	running, err := search.Start(ctx, config)
	if err != nil {
		return err
	}

	var (
		receiver = running.Receiver()
		found    = 0
		shown    []*expr.Expression[uint64]
	)

	if report.limit > 0 {
		receiver = stream.Take(receiver, report.limit)
	}

	for result := range stream.Iterate(receiver) {
		if found == 0 {
			fmt.Fprintf(report.err, "First expression found in %s\n", time.Since(start))
		}

		found += 1

		if len(shown) < report.show {
			shown = append(shown, result)
		}

		if progress(slog.Int("found", found)) {
			fmt.Fprintf(report.err, "Found %d %s in %.2fs\n", found, plural(found), time.Since(start).Seconds())
		}
	}

	if err := running.Close(); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("search interrupted after %d %s: %w", found, plural(found), err)
	}

	stats := running.Stats()
	slog.Info("Search statistics", stats.LogAttrs()...)

	fmt.Fprintf(report.err, "%d %s found in %s\n", found, plural(found), time.Since(start))

	if len(shown) > 0 {
		fmt.Fprintf(report.err, "First %d %s:\n", len(shown), plural(len(shown)))
	}

	for _, result := range shown {
		if _, err := fmt.Fprintf(report.out, "%d\t%s\t%s\n", result.Value(), result, result.Debug()); err != nil {
			return err
		}
	}

	return nil
}
