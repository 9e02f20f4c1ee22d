package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specterops/countdown/util"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), os.Interrupt)
	defer done()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		util.SLogError("Countdown search failed", err)

		done()
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn

	if verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
