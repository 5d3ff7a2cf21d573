// Package metrics defines the Prometheus collectors for the ingest service
// and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PostingsIngestedTotal counts successful store writes by ingestion path
	// ("single", "batch") and action ("created", "updated", "inserted").
	PostingsIngestedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "postings_ingested_total",
			Help: "Total postings written to the store by path and action.",
		},
		[]string{"path", "action"},
	)

	// IngestErrorsTotal counts failed items by ingestion path.
	IngestErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_errors_total",
			Help: "Total failed ingestion items by path.",
		},
		[]string{"path"},
	)

	// PostingsExpiredTotal counts postings deactivated by the expiry sweep.
	PostingsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "postings_expired_total",
			Help: "Total postings deactivated because their expiry date passed.",
		},
	)
)

func init() {
	prometheus.MustRegister(PostingsIngestedTotal, IngestErrorsTotal, PostingsExpiredTotal)
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
