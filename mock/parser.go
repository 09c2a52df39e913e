package mock

import (
	"context"

	"github.com/fwojciec/wikisynth"
)

var _ wikisynth.ArticleParser = (*ArticleParser)(nil)

// ArticleParser is a mock implementation of wikisynth.ArticleParser.
type ArticleParser struct {
	ParseFn func(ctx context.Context, title string) (*wikisynth.ParsedArticle, error)
}

func (p *ArticleParser) Parse(ctx context.Context, title string) (*wikisynth.ParsedArticle, error) {
	return p.ParseFn(ctx, title)
}
