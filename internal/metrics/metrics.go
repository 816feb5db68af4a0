// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LanguageBackendCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomatch_language_backend_calls_total",
			Help: "Language backend calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	LanguageCorrectiveRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomatch_language_corrective_retries_total",
			Help: "Corrective translation retries by reason",
		},
		[]string{"reason"},
	)

	LanguageDetections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomatch_language_detections_total",
			Help: "Language detections by method and detected language",
		},
		[]string{"method", "language"},
	)

	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomatch_match_requests_total",
			Help: "FAQ match attempts by outcome",
		},
		[]string{"outcome"},
	)

	MatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "symptomatch_match_duration_seconds",
			Help:    "Time spent scoring the catalog for one query",
			Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12),
		},
	)

	ReportsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "symptomatch_reports_processed_total",
			Help: "Uploaded reports by detected language and outcome",
		},
		[]string{"language", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "symptomatch_http_request_duration_seconds",
			Help: "HTTP request duration by route and status",
		},
		[]string{"route", "status"},
	)
)

// Outcome labels shared by several collectors.
const (
	OutcomeOK          = "ok"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
	OutcomeMatched     = "matched"
	OutcomeNoMatch     = "no_match"
)
