package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// scoring engine and the dispatch publisher.
type Metrics struct {
	BatchesScored   prometheus.Counter
	BatchesRejected prometheus.Counter
	RegionsScored   prometheus.Counter

	BatchScoringDuration prometheus.Histogram
	BatchRegions         prometheus.Histogram

	// Gauges describing the currently retained batch; overwritten wholesale
	// on every successful submission, mirroring the batch slot itself.
	LatestBatchRegions    prometheus.Gauge
	LatestCriticalRegions prometheus.Gauge
	LatestTankersNeeded   prometheus.Gauge

	DispatchPublishes *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		BatchesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drought_relief",
			Name:      "batches_scored_total",
			Help:      "Total region batches scored and installed.",
		}),
		BatchesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drought_relief",
			Name:      "batches_rejected_total",
			Help:      "Total submissions rejected by precondition validation.",
		}),
		RegionsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "drought_relief",
			Name:      "regions_scored_total",
			Help:      "Total individual regions scored across all batches.",
		}),
		BatchScoringDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drought_relief",
			Name:      "batch_scoring_duration_seconds",
			Help:      "Duration of a complete validate-score-install cycle.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		BatchRegions: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "drought_relief",
			Name:      "batch_regions",
			Help:      "Number of regions per scored batch.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		LatestBatchRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drought_relief",
			Name:      "latest_batch_regions",
			Help:      "Regions in the most recently scored batch.",
		}),
		LatestCriticalRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drought_relief",
			Name:      "latest_batch_critical_regions",
			Help:      "Critical-stress regions in the most recently scored batch.",
		}),
		LatestTankersNeeded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "drought_relief",
			Name:      "latest_batch_tankers_needed",
			Help:      "Total tankers required by the most recently scored batch.",
		}),
		DispatchPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "drought_relief",
			Name:      "dispatch_publish_total",
			Help:      "Dispatch plan publications by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.BatchesScored,
		m.BatchesRejected,
		m.RegionsScored,
		m.BatchScoringDuration,
		m.BatchRegions,
		m.LatestBatchRegions,
		m.LatestCriticalRegions,
		m.LatestTankersNeeded,
		m.DispatchPublishes,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		BatchesScored:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drought_relief", Name: "batches_scored_total"}),
		BatchesRejected:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drought_relief", Name: "batches_rejected_total"}),
		RegionsScored:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "drought_relief", Name: "regions_scored_total"}),
		BatchScoringDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "drought_relief", Name: "batch_scoring_duration_seconds"}),
		BatchRegions:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "drought_relief", Name: "batch_regions"}),
		LatestBatchRegions:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "drought_relief", Name: "latest_batch_regions"}),
		LatestCriticalRegions: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "drought_relief", Name: "latest_batch_critical_regions"}),
		LatestTankersNeeded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "drought_relief", Name: "latest_batch_tankers_needed"}),
		DispatchPublishes:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "drought_relief", Name: "dispatch_publish_total"}, []string{"outcome"}),
	}
}
