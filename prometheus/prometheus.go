// Package prometheus instruments wikisynth services with Prometheus metrics.
package prometheus

import (
	"github.com/fwojciec/wikisynth"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wikisynth"

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	FetchBytes    prometheus.Counter
	ParseTotal    *prometheus.CounterVec
	ParseDuration prometheus.Histogram
	Redirects     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Article fetches by result code.",
		}, []string{"code"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Article fetch latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		FetchBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_bytes_total",
			Help:      "Bytes of wikitext fetched.",
		}),
		ParseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_total",
			Help:      "Article parses by result code.",
		}, []string{"code"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "End-to-end parse latency including redirects.",
			Buckets:   prometheus.DefBuckets,
		}),
		Redirects: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "redirects_followed_total",
			Help:      "Redirect hops followed by successful parses.",
		}),
	}
	reg.MustRegister(m.FetchTotal, m.FetchDuration, m.FetchBytes, m.ParseTotal, m.ParseDuration, m.Redirects)
	return m
}

// resultCode labels an outcome with "ok" or the application error code.
func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	return wikisynth.ErrorCode(err)
}
