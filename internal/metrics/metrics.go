// Package metrics holds the prometheus collectors shared by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var labels = prometheus.Labels{
	"app": "boxity",
}

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "http_requests_total",
		Help:        "HTTP requests by route, method and status code",
		ConstLabels: labels,
	}, []string{"route", "method", "code"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "http_request_duration_seconds",
		Help:        "HTTP request latency by route",
		ConstLabels: labels,
		Buckets:     prometheus.DefBuckets,
	}, []string{"route"})

	EventsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "events_logged_total",
		Help:        "Events appended to local batches",
		ConstLabels: labels,
	})

	BatchesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "batches_created_total",
		Help:        "Batches registered",
		ConstLabels: labels,
	})

	Scans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "qr_scans_total",
		Help:        "Scanned QR payloads by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	StoreFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "store_fallbacks_total",
		Help:        "Loads that returned fixture data instead of persisted data",
		ConstLabels: labels,
	}, []string{"reason"})

	StoreConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Name:        "store_conflicts_total",
		Help:        "Saves rejected because the slot changed since it was read",
		ConstLabels: labels,
	})

	ExternalFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "external_failures_total",
		Help:        "Failed calls to external services",
		ConstLabels: labels,
	}, []string{"service"})
)

// Registry holds every collector above. It is separate from the default
// registry so tests can build several servers in one process.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		HTTPRequests,
		HTTPDuration,
		EventsLogged,
		BatchesCreated,
		Scans,
		StoreFallbacks,
		StoreConflicts,
		ExternalFailures,
	)
}
