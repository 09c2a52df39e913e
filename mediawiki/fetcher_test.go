package mediawiki_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/wikisynth"
	"github.com/fwojciec/wikisynth/mediawiki"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// Compile-time verification that Fetcher implements wikisynth.ArticleFetcher.
var _ wikisynth.ArticleFetcher = (*mediawiki.Fetcher)(nil)

const catResponse = `{"batchcomplete":true,"query":{"pages":[{"pageid":6678,"ns":0,"title":"Cat","revisions":[{"slots":{"main":{"contentmodel":"wikitext","contentformat":"text/x-wiki","content":"The '''cat''' is a mammal."}}}]}]}}`

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns main slot content of latest revision", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(catResponse))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		wikitext, err := fetcher.Fetch(context.Background(), "Cat")
		require.NoError(t, err)
		assert.Equal(t, "The '''cat''' is a mammal.", wikitext)
	})

	t.Run("sends query parameters and user agent", func(t *testing.T) {
		t.Parallel()

		var got *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			_, _ = w.Write([]byte(catResponse))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(
			mediawiki.WithEndpoint(server.URL),
			mediawiki.WithUserAgent("test-agent/1.0"),
		)

		_, err := fetcher.Fetch(context.Background(), "Felis catus")
		require.NoError(t, err)

		require.NotNil(t, got)
		q := got.URL.Query()
		assert.Equal(t, "query", q.Get("action"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "2", q.Get("formatversion"))
		assert.Equal(t, "revisions", q.Get("prop"))
		assert.Equal(t, "content", q.Get("rvprop"))
		assert.Equal(t, "main", q.Get("rvslots"))
		assert.Equal(t, "Felis catus", q.Get("titles"))
		assert.Equal(t, "test-agent/1.0", got.Header.Get("User-Agent"))
	})

	t.Run("returns ENOTFOUND for missing page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"batchcomplete":true,"query":{"pages":[{"ns":0,"title":"Nope","missing":true}]}}`))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "Nope")
		require.Error(t, err)
		assert.Equal(t, wikisynth.ENOTFOUND, wikisynth.ErrorCode(err))
	})

	t.Run("returns EINVALID for invalid title", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"query":{"pages":[{"title":"A[b","invalidreason":"bad","invalid":true}]}}`))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "A[b")
		require.Error(t, err)
		assert.Equal(t, wikisynth.EINVALID, wikisynth.ErrorCode(err))
	})

	t.Run("returns EINVALID for empty title without a request", func(t *testing.T) {
		t.Parallel()

		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "  ")
		require.Error(t, err)
		assert.Equal(t, wikisynth.EINVALID, wikisynth.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("returns API error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error":{"code":"ratelimited","info":"slow down"}}`))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "Cat")
		require.Error(t, err)
		assert.Equal(t, wikisynth.EINTERNAL, wikisynth.ErrorCode(err))
		assert.Contains(t, err.Error(), "ratelimited")
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "Cat")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("returns error for malformed JSON", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(mediawiki.WithEndpoint(server.URL))

		_, err := fetcher.Fetch(context.Background(), "Cat")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode response")
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte(catResponse))
		}))
		defer server.Close()

		fetcher := mediawiki.NewFetcher(
			mediawiki.WithEndpoint(server.URL),
			mediawiki.WithTimeout(10*time.Millisecond),
		)

		_, err := fetcher.Fetch(context.Background(), "Cat")
		require.Error(t, err)
	})

	t.Run("respects context cancellation while rate limited", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(catResponse))
		}))
		defer server.Close()

		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		fetcher := mediawiki.NewFetcher(
			mediawiki.WithEndpoint(server.URL),
			mediawiki.WithLimiter(limiter),
		)

		_, err := fetcher.Fetch(context.Background(), "Cat")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err = fetcher.Fetch(ctx, "Cat")
		require.Error(t, err)
	})
}
