package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the reshape pipeline.
type Metrics struct {
	RowsExtracted    prometheus.Counter
	RowsLoaded       prometheus.Counter
	ConversionErrors prometheus.Counter

	RuleApplications *prometheus.CounterVec // label: rule={rename,fill_down,...}
	PipelineRuns     *prometheus.CounterVec // label: outcome={success,error}

	RunDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsExtracted,
		m.RowsLoaded,
		m.ConversionErrors,
		m.RuleApplications,
		m.PipelineRuns,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidytable",
			Name:      "rows_extracted_total",
			Help:      "Total rows read from input sources.",
		}),
		RowsLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidytable",
			Name:      "rows_loaded_total",
			Help:      "Total rows written to output sinks.",
		}),
		ConversionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tidytable",
			Name:      "conversion_errors_total",
			Help:      "Total cells that failed type coercion and were recorded as missing.",
		}),
		RuleApplications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tidytable",
			Name:      "rule_applications_total",
			Help:      "Rule applications by rule kind.",
		}, []string{"rule"}),
		PipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tidytable",
			Name:      "pipeline_runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tidytable",
			Name:      "run_duration_seconds",
			Help:      "End-to-end pipeline run duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
