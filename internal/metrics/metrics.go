// Package metrics defines Prometheus metrics for the Jet merchant client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jet"

// Request metrics.
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of API requests by method and status class.",
	}, []string{"method", "class"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	TransportErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transport_errors_total",
		Help:      "Total number of requests that failed below the HTTP layer.",
	})
)

// Authentication metrics.
var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	}, []string{"result"})

	ReauthTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reauth_total",
		Help:      "Total number of implicit reauthentication attempts by outcome.",
	}, []string{"outcome"})
)

// Login results.
const (
	LoginSuccess    = "success"
	LoginRejected   = "rejected"
	LoginMalformed  = "malformed"
	LoginTestFailed = "auth_test_failed"
	LoginError      = "error"
)

// Reauth outcomes.
const (
	ReauthRefreshed = "refreshed"
	ReauthFailed    = "failed"
	ReauthSkipped   = "skipped"
	ReauthShared    = "shared"
)
