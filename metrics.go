package main

import (
	"net/http"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ParserMetrics carries the instruments handed
// to the metrics wrapper of the response reader.
type ParserMetrics struct {
	Responses    metrics.Counter
	Literals     metrics.Counter
	Failures     metrics.Counter
	LiteralBytes metrics.Histogram
}

// NewParserMetrics returns Prometheus backed
// instruments if addr is set, discarding ones
// otherwise.
func NewParserMetrics(addr string) *ParserMetrics {

	if addr == "" {
		return &ParserMetrics{
			Responses:    discard.NewCounter(),
			Literals:     discard.NewCounter(),
			Failures:     discard.NewCounter(),
			LiteralBytes: discard.NewHistogram(),
		}
	}

	return &ParserMetrics{
		Responses: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "iemail",
			Subsystem: "parser",
			Name:      "responses_total",
			Help:      "Number of responses read",
		}, nil),
		Literals: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "iemail",
			Subsystem: "parser",
			Name:      "literals_total",
			Help:      "Number of literals interrupting a response",
		}, nil),
		Failures: prometheus.NewCounterFrom(prom.CounterOpts{
			Namespace: "iemail",
			Subsystem: "parser",
			Name:      "failures_total",
			Help:      "Number of responses failing to parse",
		}, nil),
		LiteralBytes: prometheus.NewHistogramFrom(prom.HistogramOpts{
			Namespace: "iemail",
			Subsystem: "parser",
			Name:      "literal_bytes",
			Help:      "Announced size of literals",
			Buckets:   prom.ExponentialBuckets(64, 4, 8),
		}, nil),
	}
}

func runPromHTTP(logger log.Logger, addr string) {

	if addr == "" {
		level.Debug(logger).Log("msg", "prometheus addr is empty, not exposing prometheus metrics")
		return
	}

	http.Handle("/metrics", promhttp.Handler())

	level.Info(logger).Log("msg", "prometheus handler listening", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		level.Warn(logger).Log("msg", "failed to serve prometheus metrics", "err", err)
	}
}
