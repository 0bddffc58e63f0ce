package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetches          *prometheus.CounterVec
	fetchErrors      *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	cacheRequests    *prometheus.CounterVec
	alertsFired      *prometheus.CounterVec
	lastValue        *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetches: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_fetch_requests_total",
				Help: "Total number of symbol fetches against the chart API",
			},
			[]string{"symbol"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_fetch_errors_total",
				Help: "Total number of failed pipeline runs by kind",
			},
			[]string{"kind"},
		),
		pipelineDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finboard_pipeline_duration_seconds",
				Help:    "Duration of a full fetch+transform pass",
				Buckets: prometheus.DefBuckets,
			},
		),
		cacheRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_snapshot_cache_requests_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		alertsFired: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_alerts_fired_total",
				Help: "Threshold alerts fired by severity",
			},
			[]string{"severity"},
		),
		lastValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "finboard_last_value",
				Help: "Latest observed value per macro column",
			},
			[]string{"column"},
		),
	}
}

// RecordFetch records one symbol fetch.
func (r *Recorder) RecordFetch(symbol string) {
	r.fetches.WithLabelValues(symbol).Inc()
}

// RecordFetchError records a failed pipeline run.
func (r *Recorder) RecordFetchError(kind string) {
	r.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordPipelineDuration records a full fetch+transform pass in seconds.
func (r *Recorder) RecordPipelineDuration(seconds float64) {
	r.pipelineDuration.Observe(seconds)
}

// RecordCacheHit records a snapshot cache lookup result.
func (r *Recorder) RecordCacheHit(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheRequests.WithLabelValues(result).Inc()
}

// RecordAlert records one fired alert.
func (r *Recorder) RecordAlert(severity string) {
	r.alertsFired.WithLabelValues(severity).Inc()
}

// RecordLastValue records the latest value for a macro column.
func (r *Recorder) RecordLastValue(column string, value float64) {
	r.lastValue.WithLabelValues(column).Set(value)
}
