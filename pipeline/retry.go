package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure RetryFetcher implements wikisynth.ArticleFetcher at compile time.
var _ wikisynth.ArticleFetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFetcher retries transient fetch failures with backoff.
// Missing pages, invalid titles and cancellation are returned immediately.
type RetryFetcher struct {
	Fetcher wikisynth.ArticleFetcher

	// Delays between attempts. Nil means DefaultRetryDelays.
	Delays []time.Duration

	// Logger, if set, receives one message per retry.
	Logger *slog.Logger
}

// NewRetryFetcher wraps fetcher with the default retry delays.
func NewRetryFetcher(fetcher wikisynth.ArticleFetcher) *RetryFetcher {
	return &RetryFetcher{Fetcher: fetcher}
}

// Fetch attempts the fetch once plus one retry per configured delay.
func (f *RetryFetcher) Fetch(ctx context.Context, title string) (string, error) {
	delays := f.Delays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		wikitext, err := f.Fetcher.Fetch(ctx, title)
		if err == nil {
			return wikitext, nil
		}
		if !retryable(err) {
			return "", err
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if f.Logger != nil {
			f.Logger.Warn("retry", "title", title, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	switch wikisynth.ErrorCode(err) {
	case wikisynth.ENOTFOUND, wikisynth.EINVALID, wikisynth.ECANCELED, wikisynth.ETOOMANYREDIRECTS:
		return false
	}
	return true
}
