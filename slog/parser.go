package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure LoggingParser implements wikisynth.ArticleParser.
var _ wikisynth.ArticleParser = (*LoggingParser)(nil)

// LoggingParser wraps an ArticleParser with logging.
type LoggingParser struct {
	next   wikisynth.ArticleParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next wikisynth.ArticleParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the resolved title and
// result sizes.
func (p *LoggingParser) Parse(ctx context.Context, title string) (article *wikisynth.ParsedArticle, err error) {
	defer func(begin time.Time) {
		attrs := []any{"title", title}
		if article != nil {
			attrs = append(attrs,
				"resolved", article.Title,
				"redirects", len(article.RedirectedFrom),
				"sections", len(article.Sections),
				"references", len(article.References),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		p.logger.Info("parse", attrs...)
	}(time.Now())
	return p.next.Parse(ctx, title)
}
