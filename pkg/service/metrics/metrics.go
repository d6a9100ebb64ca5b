package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

const namespace = "riskcalc"

// Recorder collects assessment metrics on its own registry
type Recorder struct {
	registry           *prometheus.Registry
	assessments        *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	totalScore         prometheus.Histogram
}

// New creates a Recorder with Go runtime and process collectors registered
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Number of completed risk assessments by category.",
		}, []string{"category"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Number of rejected risk assessment inputs by field.",
		}, []string{"field"}),
		totalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "total_score",
			Help:      "Distribution of total risk scores.",
			Buckets:   []float64{20, 50, 75, 100, 150, 235},
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.assessments,
		r.validationFailures,
		r.totalScore,
	)

	// Pre-create series so every category is exported from the start
	for _, c := range types.AllRiskCategories() {
		r.assessments.WithLabelValues(c.String())
	}

	return r
}

// ObserveAssessment records a completed assessment
func (r *Recorder) ObserveAssessment(category types.RiskCategory, totalScore int) {
	r.assessments.WithLabelValues(category.String()).Inc()
	r.totalScore.Observe(float64(totalScore))
}

// ObserveValidationFailure records a rejected input
func (r *Recorder) ObserveValidationFailure(field string) {
	r.validationFailures.WithLabelValues(field).Inc()
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
