package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/mock"
	"github.com/fwojciec/wikisynth/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore returns a mock store backed by a map.
func memoryStore() *mock.ArticleStore {
	var mu sync.Mutex
	articles := make(map[string]*wikisynth.CachedArticle)
	return &mock.ArticleStore{
		SaveArticleFn: func(_ context.Context, a *wikisynth.CachedArticle) error {
			mu.Lock()
			defer mu.Unlock()
			articles[a.Title] = a
			return nil
		},
		FindArticleByTitleFn: func(_ context.Context, title string) (*wikisynth.CachedArticle, error) {
			mu.Lock()
			defer mu.Unlock()
			a, ok := articles[title]
			if !ok {
				return nil, wikisynth.Errorf(wikisynth.ENOTFOUND, "not cached")
			}
			return a, nil
		},
	}
}

func TestCachingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches once and serves from cache", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "body", nil
			},
		}, memoryStore(), 0)

		first, err := f.Fetch(context.Background(), "Paris")
		require.NoError(t, err)
		second, err := f.Fetch(context.Background(), "Paris")
		require.NoError(t, err)

		assert.Equal(t, "body", first)
		assert.Equal(t, "body", second)
		assert.Equal(t, 1, calls)
	})

	t.Run("refetches expired entries", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var calls int
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls++
				return "body", nil
			},
		}, memoryStore(), time.Hour)
		f.Now = func() time.Time { return now }

		_, err := f.Fetch(context.Background(), "Paris")
		require.NoError(t, err)
		now = now.Add(2 * time.Hour)
		_, err = f.Fetch(context.Background(), "Paris")
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})

	t.Run("does not cache errors", func(t *testing.T) {
		t.Parallel()

		store := memoryStore()
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", wikisynth.Errorf(wikisynth.ENOTFOUND, "no revisions")
			},
		}, store, 0)

		_, err := f.Fetch(context.Background(), "Nope")

		assert.Equal(t, wikisynth.ENOTFOUND, wikisynth.ErrorCode(err))
		_, err = store.FindArticleByTitle(context.Background(), "Nope")
		assert.Equal(t, wikisynth.ENOTFOUND, wikisynth.ErrorCode(err))
	})

	t.Run("store failure does not fail fetch", func(t *testing.T) {
		t.Parallel()

		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "body", nil
			},
		}, &mock.ArticleStore{
			FindArticleByTitleFn: func(_ context.Context, _ string) (*wikisynth.CachedArticle, error) {
				return nil, errors.New("database locked")
			},
			SaveArticleFn: func(_ context.Context, _ *wikisynth.CachedArticle) error {
				return errors.New("database locked")
			},
		}, 0)

		got, err := f.Fetch(context.Background(), "Paris")

		require.NoError(t, err)
		assert.Equal(t, "body", got)
	})

	t.Run("collapses concurrent fetches of same title", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		release := make(chan struct{})
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				calls.Add(1)
				<-release
				return "body", nil
			},
		}, &mock.ArticleStore{
			FindArticleByTitleFn: func(_ context.Context, _ string) (*wikisynth.CachedArticle, error) {
				return nil, wikisynth.Errorf(wikisynth.ENOTFOUND, "not cached")
			},
			SaveArticleFn: func(_ context.Context, _ *wikisynth.CachedArticle) error {
				return nil
			},
		}, 0)

		const n = 5
		var wg sync.WaitGroup
		var ready sync.WaitGroup
		ready.Add(n)
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ready.Done()
				got, err := f.Fetch(context.Background(), "Paris")
				assert.NoError(t, err)
				assert.Equal(t, "body", got)
			}()
		}
		ready.Wait()
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.GreaterOrEqual(t, calls.Load(), int64(1))
		assert.Less(t, calls.Load(), int64(n))
	})

	t.Run("canceled caller does not cancel shared fetch", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		var calls atomic.Int64
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				if calls.Add(1) == 1 {
					close(started)
				}
				select {
				case <-release:
					return "body", nil
				case <-ctx.Done():
					return "", ctx.Err()
				}
			},
		}, memoryStore(), 0)

		ctx, cancel := context.WithCancel(context.Background())
		canceled := make(chan error, 1)
		go func() {
			_, err := f.Fetch(ctx, "Paris")
			canceled <- err
		}()
		<-started

		type result struct {
			body string
			err  error
		}
		waiting := make(chan result, 1)
		go func() {
			body, err := f.Fetch(context.Background(), "Paris")
			waiting <- result{body, err}
		}()
		time.Sleep(20 * time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-canceled, context.Canceled)

		close(release)
		got := <-waiting
		require.NoError(t, got.err)
		assert.Equal(t, "body", got.body)
		assert.Equal(t, int64(1), calls.Load())
	})

	t.Run("logs failed cache writes", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		store := memoryStore()
		store.SaveArticleFn = func(_ context.Context, _ *wikisynth.CachedArticle) error {
			return errors.New("disk full")
		}
		f := pipeline.NewCachingFetcher(&mock.ArticleFetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "body", nil
			},
		}, store, 0)
		f.Logger = slog.New(slog.NewTextHandler(&buf, nil))

		got, err := f.Fetch(context.Background(), "Paris")

		require.NoError(t, err)
		assert.Equal(t, "body", got)
		assert.Contains(t, buf.String(), `msg="cache save failed"`)
		assert.Contains(t, buf.String(), "title=Paris")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}
