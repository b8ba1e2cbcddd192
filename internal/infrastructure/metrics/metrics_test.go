package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	origRegisterer := prometheus.DefaultRegisterer
	origGatherer := prometheus.DefaultGatherer
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = origRegisterer
		prometheus.DefaultGatherer = origGatherer
	})

	m := New()

	if m.ConsolidationsTotal == nil || m.CacheHits == nil || m.ConsumerProcessed == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ConsolidationsTotal.WithLabelValues("entry").Inc()
	m.CascadeDays.Observe(3)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metric families, got none")
	}
}
