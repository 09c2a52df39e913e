package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure LoggingFetcher implements wikisynth.ArticleFetcher.
var _ wikisynth.ArticleFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ArticleFetcher with logging.
type LoggingFetcher struct {
	next   wikisynth.ArticleFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next wikisynth.ArticleFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, title string) (wikitext string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"title", title,
			"bytes", len(wikitext),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, title)
}
