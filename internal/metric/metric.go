// Package metric provides Prometheus metrics support
package metric

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	resultExplicit = "explicit"
	resultDefault  = "default"
	resultOK       = "ok"
	resultError    = "error"
)

var (
	// totalLookups is the metric that reports the total number of media type lookups,
	// partitioned by whether an explicit mapping was found or the default was returned
	totalLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediatype_lookups_total",
		Help: "The total number of media type lookups",
	}, []string{"result"})

	// totalReloads is the metric that reports the total number of table reloads
	totalReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediatype_reloads_total",
		Help: "The total number of media types table reloads",
	}, []string{"result"})

	// tableEntries is the metric that reports the number of entries in the served table
	tableEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mediatype_table_entries",
		Help: "The number of suffix mappings in the served table",
	})

	// httpRequests is the metric that reports the served HTTP requests by status code class
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mediatype_http_requests_total",
		Help: "The total number of served HTTP requests",
	}, []string{"code"})
)

// AddMetricsEndpoint exposes metrics to the specified endpoint
func AddMetricsEndpoint(metricsPath string, handler chi.Router) {
	handler.Handle(metricsPath, promhttp.Handler())
}

// Lookup increments the lookups counter
func Lookup(explicit bool) {
	if explicit {
		totalLookups.WithLabelValues(resultExplicit).Inc()
	} else {
		totalLookups.WithLabelValues(resultDefault).Inc()
	}
}

// Reload increments the reloads counter and updates the table size
func Reload(entries int, err error) {
	if err != nil {
		totalReloads.WithLabelValues(resultError).Inc()
		return
	}

	totalReloads.WithLabelValues(resultOK).Inc()
	tableEntries.Set(float64(entries))
}

// TableSize updates the table size gauge
func TableSize(entries int) {
	tableEntries.Set(float64(entries))
}

// HTTPRequestServed increments the served HTTP requests counter
func HTTPRequestServed(status int) {
	switch {
	case status >= 500:
		httpRequests.WithLabelValues("5xx").Inc()
	case status >= 400:
		httpRequests.WithLabelValues("4xx").Inc()
	case status >= 300:
		httpRequests.WithLabelValues("3xx").Inc()
	default:
		httpRequests.WithLabelValues("2xx").Inc()
	}
}
