package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/wikisynth"
)

// Ensure Fetcher implements wikisynth.ArticleFetcher.
var _ wikisynth.ArticleFetcher = (*Fetcher)(nil)

// Fetcher records fetch counts, latency and bytes.
type Fetcher struct {
	next    wikisynth.ArticleFetcher
	metrics *Metrics
}

// NewFetcher wraps next with metrics.
func NewFetcher(next wikisynth.ArticleFetcher, metrics *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: metrics}
}

// Fetch delegates to the wrapped fetcher.
func (f *Fetcher) Fetch(ctx context.Context, title string) (string, error) {
	begin := time.Now()
	wikitext, err := f.next.Fetch(ctx, title)
	f.metrics.FetchDuration.Observe(time.Since(begin).Seconds())
	f.metrics.FetchTotal.WithLabelValues(resultCode(err)).Inc()
	f.metrics.FetchBytes.Add(float64(len(wikitext)))
	return wikitext, err
}
