package debts

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the debts pipeline. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Upstream query latency by Detran method
	GatewayLatency *prometheus.HistogramVec

	GatewayFailures *prometheus.CounterVec

	// Normalized records returned, by record type
	Records *prometheus.CounterVec

	ValidationFailures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		GatewayLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "debts_gateway_duration_seconds",
			Help:    "Duration of Detran-SP queries by method",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"query"}),

		GatewayFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debts_gateway_failures_total",
			Help: "Total failed Detran-SP queries by method",
		}, []string{"query"}),

		Records: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debts_records_total",
			Help: "Total normalized debt records returned by type",
		}, []string{"type"}),

		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "debts_validation_failures_total",
			Help: "Total upstream items rejected by validation by type",
		}, []string{"type"}),
	}
}

func (m *Metrics) ObserveGatewayLatency(query Query, d time.Duration) {
	if m != nil {
		m.GatewayLatency.WithLabelValues(string(query)).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementGatewayFailure(query Query) {
	if m != nil {
		m.GatewayFailures.WithLabelValues(string(query)).Inc()
	}
}

func (m *Metrics) IncrementRecords(kind Kind) {
	if m != nil {
		m.Records.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) IncrementValidationFailure(kind Kind) {
	if m != nil {
		m.ValidationFailures.WithLabelValues(string(kind)).Inc()
	}
}
