package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.TransactionsApplied == nil || m.TransactionsRejected == nil || m.HTTPRequests == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.TransactionsApplied.WithLabelValues("deposit").Inc()
	m.TransactionsRejected.WithLabelValues("overdraft").Inc()
	m.RowsSkipped.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}
