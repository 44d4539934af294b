// Package metrics holds the Prometheus metrics for cfrsync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AgenciesCreated     prometheus.Counter
	TitlesCreated       prometheus.Counter
	AssociationsCreated prometheus.Counter
	CorrectionsCreated  prometheus.Counter
	RecordsSkipped      prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
}

// New creates all metrics and registers them with the given registerer.
// Tests pass a fresh registry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AgenciesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cfrsync_agencies_created_total",
			Help: "Total number of agencies inserted during ingestion",
		}),
		TitlesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cfrsync_titles_created_total",
			Help: "Total number of titles inserted during ingestion",
		}),
		AssociationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cfrsync_associations_created_total",
			Help: "Total number of agency-title links inserted during ingestion",
		}),
		CorrectionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "cfrsync_corrections_created_total",
			Help: "Total number of corrections inserted during ingestion",
		}),
		RecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "cfrsync_records_skipped_total",
			Help: "Total number of upstream records skipped as duplicates or malformed",
		}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cfrsync_http_requests_total",
			Help: "Total HTTP requests served by the read API",
		}, []string{"path", "status"}),
	}
}
