package mock

import (
	"context"

	"github.com/fwojciec/wikisynth"
)

var _ wikisynth.ArticleFetcher = (*ArticleFetcher)(nil)

// ArticleFetcher is a mock implementation of wikisynth.ArticleFetcher.
type ArticleFetcher struct {
	FetchFn func(ctx context.Context, title string) (string, error)
}

func (f *ArticleFetcher) Fetch(ctx context.Context, title string) (string, error) {
	return f.FetchFn(ctx, title)
}
