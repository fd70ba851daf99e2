package gateway

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	editsTotal           *prometheus.CounterVec //nolint:gochecknoglobals
	persistFailuresTotal prometheus.Counter     //nolint:gochecknoglobals
	metricsOnce          sync.Once              //nolint:gochecknoglobals
)

func registerMetrics() {
	metricsOnce.Do(func() {
		editsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "advanced_settings_edits_total",
				Help: "Number of accepted advanced settings edits, by key.",
			},
			[]string{"key"},
		)
		persistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "advanced_settings_persist_failures_total",
			Help: "Number of advanced settings write-throughs the store rejected.",
		})
	})
}
