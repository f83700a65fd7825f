package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Replay metrics
	TransactionsApplied  *prometheus.CounterVec
	TransactionsRejected *prometheus.CounterVec
	RowsSkipped          prometheus.Counter
	ReplayDuration       prometheus.Histogram
	AccountsTouched      prometheus.Gauge
	AccountsLocked       prometheus.Gauge

	// API metrics (serve mode)
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on reg, defaulting
// to the global registry when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		TransactionsApplied: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txreplay_transactions_applied_total",
				Help: "Total number of transactions applied, by type",
			},
			[]string{"type"},
		),
		TransactionsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txreplay_transactions_rejected_total",
				Help: "Total number of transactions rejected, by reason",
			},
			[]string{"reason"},
		),
		RowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "txreplay_rows_skipped_total",
			Help: "Total number of malformed input rows skipped",
		}),
		ReplayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "txreplay_replay_duration_seconds",
			Help:    "Duration of full replay runs",
			Buckets: prometheus.DefBuckets,
		}),
		AccountsTouched: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txreplay_accounts_touched",
			Help: "Number of accounts touched by the last replay",
		}),
		AccountsLocked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "txreplay_accounts_locked",
			Help: "Number of accounts locked by the last replay",
		}),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "txreplay_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "txreplay_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}
