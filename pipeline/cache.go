package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
	"golang.org/x/sync/singleflight"
)

// Ensure CachingFetcher implements wikisynth.ArticleFetcher at compile time.
var _ wikisynth.ArticleFetcher = (*CachingFetcher)(nil)

// CachingFetcher serves wikitext from an ArticleStore and falls back to the
// wrapped fetcher on a miss. Concurrent misses for the same title share one
// upstream fetch, which is not canceled when a waiting caller gives up.
type CachingFetcher struct {
	Fetcher wikisynth.ArticleFetcher
	Store   wikisynth.ArticleStore

	// TTL is the maximum age of a cached entry. Zero means entries never
	// expire.
	TTL time.Duration

	// Now returns the current time. Nil means time.Now.
	Now func() time.Time

	// Logger records failed cache writes. Nil disables logging.
	Logger *slog.Logger

	group singleflight.Group
}

// NewCachingFetcher creates a CachingFetcher over fetcher and store.
func NewCachingFetcher(fetcher wikisynth.ArticleFetcher, store wikisynth.ArticleStore, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{Fetcher: fetcher, Store: store, TTL: ttl}
}

// Fetch returns cached wikitext for title when fresh, otherwise fetches and
// stores it. Store failures never fail the fetch.
func (f *CachingFetcher) Fetch(ctx context.Context, title string) (string, error) {
	if cached, err := f.Store.FindArticleByTitle(ctx, title); err == nil && f.fresh(cached) {
		return cached.Wikitext, nil
	}

	// The shared fetch outlives any single caller; the upstream client
	// applies its own timeout.
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(title, func() (any, error) {
		wikitext, err := f.Fetcher.Fetch(shared, title)
		if err != nil {
			return "", err
		}
		if err := f.Store.SaveArticle(shared, &wikisynth.CachedArticle{
			Title:     title,
			Wikitext:  wikitext,
			FetchedAt: f.now(),
		}); err != nil && f.Logger != nil {
			f.Logger.Warn("cache save failed", "title", title, "err", err)
		}
		return wikitext, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (f *CachingFetcher) fresh(a *wikisynth.CachedArticle) bool {
	if f.TTL <= 0 {
		return true
	}
	return f.now().Sub(a.FetchedAt) < f.TTL
}

func (f *CachingFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}
