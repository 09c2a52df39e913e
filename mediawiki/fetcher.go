// Package mediawiki provides an implementation of wikisynth.ArticleFetcher
// backed by the MediaWiki Action API.
package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/wikisynth"
	"golang.org/x/time/rate"
)

// Defaults for the MediaWiki client.
const (
	DefaultEndpoint     = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent    = "wikisynth/0.1 (https://github.com/fwojciec/wikisynth)"
	DefaultFetchTimeout = 10 * time.Second
)

// Ensure Fetcher implements wikisynth.ArticleFetcher at compile time.
var _ wikisynth.ArticleFetcher = (*Fetcher)(nil)

// Fetcher retrieves the latest revision's wikitext for a page title.
type Fetcher struct {
	client    *http.Client
	endpoint  string
	userAgent string
	timeout   time.Duration
	limiter   *rate.Limiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithEndpoint sets the api.php URL. Defaults to English Wikipedia.
func WithEndpoint(endpoint string) Option {
	return func(f *Fetcher) {
		f.endpoint = endpoint
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Wikimedia asks API clients to identify themselves.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter sets a rate limiter shared by all requests.
// Without one, requests are not throttled.
func WithLimiter(l *rate.Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new MediaWiki Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		timeout:   DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// queryResponse is the subset of an action=query formatversion=2 response
// the fetcher reads.
type queryResponse struct {
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Fetch returns the wikitext of the latest revision of title.
func (f *Fetcher) Fetch(ctx context.Context, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "title required")
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.queryURL(title), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %q", resp.StatusCode, title)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return "", fmt.Errorf("decode response for %q: %w", title, err)
	}

	if qr.Error != nil {
		return "", fmt.Errorf("mediawiki error %s: %s", qr.Error.Code, qr.Error.Info)
	}
	if len(qr.Query.Pages) == 0 {
		return "", wikisynth.Errorf(wikisynth.ENOTFOUND, "page %q not found", title)
	}

	page := qr.Query.Pages[0]
	if page.Invalid {
		return "", wikisynth.Errorf(wikisynth.EINVALID, "invalid title %q", title)
	}
	if len(page.Revisions) == 0 {
		return "", wikisynth.Errorf(wikisynth.ENOTFOUND, "page %q not found or has no revisions", title)
	}

	return page.Revisions[0].Slots.Main.Content, nil
}

func (f *Fetcher) queryURL(title string) string {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"revisions"},
		"rvprop":        {"content"},
		"rvslots":       {"main"},
		"titles":        {title},
	}
	return f.endpoint + "?" + params.Encode()
}
