package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Validations   *prometheus.CounterVec
	CacheHits     prometheus.Counter
	BatchSize     prometheus.Histogram
	VerifyLatency prometheus.Histogram
}

// New creates and registers all metrics on the given registerer. Tests
// pass a fresh registry to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "peselgate_validations_total",
			Help: "Total PESEL validations by outcome",
		}, []string{"outcome"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "peselgate_result_cache_hits_total",
			Help: "Verification results served from the store instead of recomputed",
		}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peselgate_batch_size",
			Help:    "Number of inputs per batch verification request",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		}),
		VerifyLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "peselgate_verify_duration_seconds",
			Help:    "Latency of single verifications",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveValidation records one validation with its outcome label
// (valid, invalid_format, invalid_date, checksum_mismatch).
func (m *Metrics) ObserveValidation(outcome string) {
	m.Validations.WithLabelValues(outcome).Inc()
}
