// Package service implements the business rules on top of the sheet
// repositories: record entry and search, the approval workflow, reference
// data maintenance, authentication and exports.
package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsService exposes the domain counters scraped from /metrics.
type MetricsService struct {
	recordsCreated   prometheus.Counter
	recordsImported  prometheus.Counter
	editRequests     prometheus.Counter
	approvalOutcomes *prometheus.CounterVec
	gateTimeouts     prometheus.Counter
}

// Approval outcome label values.
const (
	OutcomeApproved         = "approved"
	OutcomeRejected         = "rejected"
	OutcomeAlreadyProcessed = "already_processed"
	OutcomeStaleRecord      = "stale_record"
)

// NewMetricsService registers the domain metrics on the given registerer.
func NewMetricsService(reg prometheus.Registerer) *MetricsService {
	factory := promauto.With(reg)
	return &MetricsService{
		recordsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuel_records_created_total",
			Help: "Fuel records appended to the store.",
		}),
		recordsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "fuel_records_imported_total",
			Help: "Fuel records imported from uploaded files.",
		}),
		editRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "edit_requests_submitted_total",
			Help: "Edit requests submitted for approval.",
		}),
		approvalOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "approval_resolutions_total",
			Help: "Approval request resolutions by outcome.",
		}, []string{"outcome"}),
		gateTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "store_gate_timeouts_total",
			Help: "Mutations rejected because the store gate stayed busy.",
		}),
	}
}

func (m *MetricsService) RecordCreated()  { m.recordsCreated.Inc() }
func (m *MetricsService) RecordsImported(n int) {
	m.recordsImported.Add(float64(n))
}
func (m *MetricsService) EditRequestSubmitted() { m.editRequests.Inc() }
func (m *MetricsService) ApprovalResolved(outcome string) {
	m.approvalOutcomes.WithLabelValues(outcome).Inc()
}
func (m *MetricsService) GateTimeout() { m.gateTimeouts.Inc() }
