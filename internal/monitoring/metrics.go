package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ducminhle1904/genetic-trace/pkg/genetic"
)

// Metrics holds the Prometheus collectors for genetic trace runs
type Metrics struct {
	runsTotal        *prometheus.CounterVec
	generationsTotal *prometheus.CounterVec
	bestFitness      *prometheus.GaugeVec
	meanFitness      *prometheus.GaugeVec
	runDuration      *prometheus.HistogramVec
	errorsTotal      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genetic_trace_runs_total",
				Help: "Total number of completed runs by outcome",
			},
			[]string{"problem", "outcome"},
		),
		generationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genetic_trace_generations_total",
				Help: "Total number of generations evaluated",
			},
			[]string{"problem"},
		),
		bestFitness: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "genetic_trace_best_fitness",
				Help: "Best fitness of the most recent generation",
			},
			[]string{"problem"},
		),
		meanFitness: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "genetic_trace_mean_fitness",
				Help: "Mean fitness of the most recent generation",
			},
			[]string{"problem"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "genetic_trace_run_duration_seconds",
				Help:    "Distribution of run durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"problem"},
		),
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "genetic_trace_errors_total",
				Help: "Total number of failed runs by error category",
			},
			[]string{"problem", "type"},
		),
	}

	reg.MustRegister(
		m.runsTotal,
		m.generationsTotal,
		m.bestFitness,
		m.meanFitness,
		m.runDuration,
		m.errorsTotal,
	)
	return m
}

// RecordGeneration records the statistics of one generation
func (m *Metrics) RecordGeneration(problem string, stats genetic.GenerationStats) {
	m.generationsTotal.WithLabelValues(problem).Inc()
	m.bestFitness.WithLabelValues(problem).Set(float64(stats.Best))
	m.meanFitness.WithLabelValues(problem).Set(stats.Mean)
}

// RecordRun records a finished run
func (m *Metrics) RecordRun(problem string, reached bool, seconds float64) {
	outcome := "exhausted"
	if reached {
		outcome = "reached"
	}
	m.runsTotal.WithLabelValues(problem, outcome).Inc()
	m.runDuration.WithLabelValues(problem).Observe(seconds)
}

// RecordError records a failed run
func (m *Metrics) RecordError(problem string, err error) {
	m.errorsTotal.WithLabelValues(problem, ErrorType(err)).Inc()
}

// Observer returns an engine observer feeding the generation metrics
func (m *Metrics) Observer(problem string) genetic.Observer {
	return genetic.ObserverFunc(func(stats genetic.GenerationStats) {
		m.RecordGeneration(problem, stats)
	})
}

// ErrorType maps an engine error to a metric label
func ErrorType(err error) string {
	switch {
	case genetic.IsConfigurationError(err):
		return "configuration"
	case genetic.IsPreconditionError(err):
		return "precondition"
	default:
		return "other"
	}
}

// MetricsHandler serves the metrics of a gatherer
type MetricsHandler struct {
	handler http.Handler
}

// NewMetricsHandler creates a new metrics handler for g
func NewMetricsHandler(g prometheus.Gatherer) *MetricsHandler {
	return &MetricsHandler{handler: promhttp.HandlerFor(g, promhttp.HandlerOpts{})}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
