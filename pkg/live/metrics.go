package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus collectors for the live server.
type metrics struct {
	activeSessions prometheus.Gauge
	sessionsTotal  prometheus.Counter
	eventsTotal    *prometheus.CounterVec
	updatesSent    prometheus.Counter
	wsErrors       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "quasar",
			Subsystem: "live",
			Name:      "active_sessions",
			Help:      "Number of live sessions",
		}),

		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "quasar",
			Subsystem: "live",
			Name:      "sessions_total",
			Help:      "Total number of sessions created",
		}),

		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quasar",
			Subsystem: "live",
			Name:      "events_total",
			Help:      "Total number of client events by status",
		}, []string{"status"}),

		updatesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "quasar",
			Subsystem: "live",
			Name:      "updates_sent_total",
			Help:      "Total number of element updates sent to clients",
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quasar",
			Subsystem: "live",
			Name:      "websocket_errors_total",
			Help:      "Total websocket errors by type",
		}, []string{"type"}),
	}
}
