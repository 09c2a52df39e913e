package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure LoggingAsker implements wikisynth.Asker.
var _ wikisynth.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with logging.
type LoggingAsker struct {
	next   wikisynth.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next wikisynth.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, article *wikisynth.ParsedArticle, question string) (answer string, err error) {
	defer func(begin time.Time) {
		var title string
		if article != nil {
			title = article.Title
		}
		a.logger.Info("ask",
			"title", title,
			"question_len", len(question),
			"answer_len", len(answer),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, article, question)
}
