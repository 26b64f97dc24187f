package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ApplicationsSaved prometheus.Counter
	SaveFailures      prometheus.Counter
	SaveDuration      prometheus.Histogram
	EnumFallbacks     *prometheus.CounterVec
	RequestLatency    *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ApplicationsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortgageportal_applications_saved_total",
			Help: "Total number of loan application graphs committed",
		}),
		SaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mortgageportal_application_save_failures_total",
			Help: "Total number of save attempts that rolled back",
		}),
		SaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mortgageportal_application_save_duration_seconds",
			Help:    "Duration of the build-and-persist pipeline",
			Buckets: prometheus.DefBuckets,
		}),
		EnumFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mortgageportal_enum_fallback_total",
			Help: "Unrecognized enum inputs that fell back to the table default",
		}, []string{"table"}),
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mortgageportal_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// IncrementApplicationsSaved increments the saved-applications counter by 1.
func (m *Metrics) IncrementApplicationsSaved() {
	m.ApplicationsSaved.Inc()
}

// IncrementSaveFailures increments the rolled-back saves counter by 1.
func (m *Metrics) IncrementSaveFailures() {
	m.SaveFailures.Inc()
}

// ObserveSaveDuration records one pipeline execution time in seconds.
func (m *Metrics) ObserveSaveDuration(seconds float64) {
	m.SaveDuration.Observe(seconds)
}

// IncrementEnumFallback records one fallback substitution for the named table.
func (m *Metrics) IncrementEnumFallback(table string) {
	m.EnumFallbacks.WithLabelValues(table).Inc()
}
