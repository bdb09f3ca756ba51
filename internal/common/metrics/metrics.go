// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SubmissionsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_submissions_received_total",
			Help: "Total number of adjustment submissions received",
		},
	)

	RequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_requests_failed_total",
			Help: "Total number of intake requests rejected or failed",
		},
		[]string{"error_code"},
	)

	RecordsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_records_persisted_total",
			Help: "Total number of adjustment records written to the store",
		},
	)

	ExportsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_exports_served_total",
			Help: "Total number of CSV exports served",
		},
	)

	ResetsPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_resets_performed_total",
			Help: "Total number of store resets performed",
		},
	)

	EmailsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_emails_sent_total",
			Help: "Total number of notification emails sent",
		},
	)

	EmailsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "intake_emails_failed_total",
			Help: "Total number of notification emails that failed to send",
		},
	)
)
