// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics collects and exposes Prometheus metrics for the learning
// center.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what handlers and middleware report to.
type Recorder interface {
	RecordFilter(results int)
	RecordSearchCommit(results int)
	RecordQuestionOpen(mode string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	filterEvaluations prometheus.Counter
	emptyResults      prometheus.Counter
	searchCommits     prometheus.Counter
	searchResults     prometheus.Histogram
	questionOpens     *prometheus.CounterVec
	httpStatus        *prometheus.CounterVec
	requestLatency    prometheus.Histogram
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		filterEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learncenter_filter_evaluations_total",
			Help: "Number of question list evaluations.",
		}),
		emptyResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learncenter_empty_results_total",
			Help: "Number of evaluations that matched no question.",
		}),
		searchCommits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "learncenter_search_commits_total",
			Help: "Number of search queries committed after the debounce delay or on submit.",
		}),
		searchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "learncenter_search_results",
			Help:    "Questions matched by committed searches.",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		questionOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learncenter_question_opens_total",
			Help: "Number of questions opened, by presentation mode.",
		}, []string{"mode"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learncenter_http_status_total",
			Help: "Number of HTTP responses by status code.",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "learncenter_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.filterEvaluations,
		c.emptyResults,
		c.searchCommits,
		c.searchResults,
		c.questionOpens,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordFilter records one evaluation of the question list.
func (c *Collector) RecordFilter(results int) {
	c.filterEvaluations.Inc()
	if results == 0 {
		c.emptyResults.Inc()
	}
}

// RecordSearchCommit records a committed search and how many questions it matched.
func (c *Collector) RecordSearchCommit(results int) {
	c.searchCommits.Inc()
	c.searchResults.Observe(float64(results))
}

// RecordQuestionOpen records a question opened in the given mode.
func (c *Collector) RecordQuestionOpen(mode string) {
	c.questionOpens.WithLabelValues(mode).Inc()
}

// RecordHTTPStatus records a response status code.
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency records how long a request took.
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RegisterLiveSessions exposes the number of in-memory learning sessions
// as a gauge read from count at scrape time.
func RegisterLiveSessions(reg prometheus.Registerer, count func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "learncenter_live_sessions",
		Help: "Number of learning sessions held in memory.",
	}, func() float64 { return float64(count()) }))
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
