// Package pipeline orchestrates fetching and normalizing articles.
// It follows redirects, supersedes stale parses, parses titles in batches
// and decorates fetchers with caching and retries.
package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/wikisynth"
)

// Ensure Parser implements wikisynth.ArticleParser at compile time.
var _ wikisynth.ArticleParser = (*Parser)(nil)

// Parser fetches an article, follows redirects and runs the normalization
// pipeline on the final page.
type Parser struct {
	Fetcher wikisynth.ArticleFetcher

	// MaxRedirects bounds the number of redirects followed.
	// Zero means wikisynth.MaxRedirects.
	MaxRedirects int
}

// NewParser creates a Parser using fetcher.
func NewParser(fetcher wikisynth.ArticleFetcher) *Parser {
	return &Parser{Fetcher: fetcher}
}

// Parse fetches title and returns the parsed article. Redirect pages are
// followed one hop at a time; following more than MaxRedirects hops fails
// with ETOOMANYREDIRECTS. Fetch errors are returned unchanged.
func (p *Parser) Parse(ctx context.Context, title string) (*wikisynth.ParsedArticle, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, wikisynth.Errorf(wikisynth.EINVALID, "title required")
	}

	maxHops := p.MaxRedirects
	if maxHops <= 0 {
		maxHops = wikisynth.MaxRedirects
	}

	var chain []string
	for {
		wikitext, err := p.Fetcher.Fetch(ctx, title)
		if err != nil {
			return nil, err
		}

		target, ok := wikisynth.ParseRedirect(wikitext)
		if !ok {
			article := wikisynth.ParseWikitext(title, wikitext)
			article.RedirectedFrom = chain
			return article, nil
		}

		if len(chain) >= maxHops {
			return nil, wikisynth.Errorf(wikisynth.ETOOMANYREDIRECTS,
				"too many redirects: %s -> %s", strings.Join(append(chain, title), " -> "), target)
		}
		chain = append(chain, title)
		title = target
	}
}
