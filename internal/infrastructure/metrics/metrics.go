package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Consolidation metrics
	ConsolidationsTotal   *prometheus.CounterVec
	ConsolidationDuration prometheus.Histogram
	CascadeDays           prometheus.Histogram
	CascadeAborts         prometheus.Counter

	// Cache metrics
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec

	// Report metrics
	ReportsBuilt    prometheus.Counter
	ReportsArchived prometheus.Counter

	// Entry metrics
	EntriesCreated *prometheus.CounterVec

	// Consumer metrics
	ConsumerProcessed prometheus.Counter
	ConsumerFailures  prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Consolidation metrics
		ConsolidationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobalance_consolidations_total",
				Help: "Total daily balance consolidations by trigger",
			},
			[]string{"trigger"},
		),
		ConsolidationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobalance_consolidation_duration_seconds",
			Help:    "Duration of consolidation runs",
			Buckets: prometheus.DefBuckets,
		}),
		CascadeDays: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gobalance_cascade_days",
			Help:    "Days recomputed per cascade",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 30},
		}),
		CascadeAborts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobalance_cascade_aborts_total",
			Help: "Total cascades aborted by a storage failure",
		}),

		// Cache metrics
		CacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobalance_cache_hits_total",
				Help: "Total cache hits by kind",
			},
			[]string{"kind"},
		),
		CacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobalance_cache_misses_total",
				Help: "Total cache misses by kind",
			},
			[]string{"kind"},
		),
		CacheInvalidations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobalance_cache_invalidations_total",
				Help: "Total cache invalidations by kind",
			},
			[]string{"kind"},
		),

		// Report metrics
		ReportsBuilt: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobalance_reports_built_total",
			Help: "Total period reports built",
		}),
		ReportsArchived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobalance_reports_archived_total",
			Help: "Total period reports archived",
		}),

		// Entry metrics
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gobalance_entries_created_total",
				Help: "Total ledger entries created by type",
			},
			[]string{"type"},
		),

		// Consumer metrics
		ConsumerProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobalance_consumer_events_processed_total",
			Help: "Total entry events processed by the consumer",
		}),
		ConsumerFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobalance_consumer_events_failed_total",
			Help: "Total entry events whose handling failed",
		}),
	}
}
