package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure Parser implements wikisynth.ArticleParser.
var _ wikisynth.ArticleParser = (*Parser)(nil)

// Parser records parse counts, latency and redirects followed.
type Parser struct {
	next    wikisynth.ArticleParser
	metrics *Metrics
}

// NewParser wraps next with metrics.
func NewParser(next wikisynth.ArticleParser, metrics *Metrics) *Parser {
	return &Parser{next: next, metrics: metrics}
}

// Parse delegates to the wrapped parser.
func (p *Parser) Parse(ctx context.Context, title string) (*wikisynth.ParsedArticle, error) {
	begin := time.Now()
	article, err := p.next.Parse(ctx, title)
	p.metrics.ParseDuration.Observe(time.Since(begin).Seconds())
	p.metrics.ParseTotal.WithLabelValues(resultCode(err)).Inc()
	if article != nil {
		p.metrics.Redirects.Add(float64(len(article.RedirectedFrom)))
	}
	return article, err
}
