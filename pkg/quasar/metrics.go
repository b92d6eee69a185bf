package quasar

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "quasar").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for drain duration.
	// Default: prometheus.DefBuckets
	Buckets []float64
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the drain duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// Metrics holds the Prometheus collectors for one or more AppStates.
// A nil *Metrics records nothing.
type Metrics struct {
	drains            prometheus.Counter
	drainDuration     prometheus.Histogram
	renders           *prometheus.CounterVec
	events            *prometheus.CounterVec
	listenersAttached prometheus.Counter
	listenersDetached prometheus.Counter
	bindings          prometheus.Gauge
}

// NewMetrics registers engine collectors with reg.
//
// Metrics collected:
//   - quasar_engine_drains_total: non-empty render queue drains
//   - quasar_engine_drain_duration_seconds: drain duration
//   - quasar_engine_renders_total: renders by status (ok, error, skipped)
//   - quasar_engine_events_total: handled events by type
//   - quasar_engine_listeners_attached_total: listeners attached to elements
//   - quasar_engine_listeners_detached_total: listeners removed from elements
//   - quasar_engine_bindings: mounted bindings
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "quasar",
		Subsystem: "engine",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(reg)

	return &Metrics{
		drains: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drains_total",
			Help:        "Total number of non-empty render queue drains",
			ConstLabels: config.ConstLabels,
		}),

		drainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drain_duration_seconds",
			Help:        "Render queue drain duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of view renders by status",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of handled events by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		listenersAttached: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_attached_total",
			Help:        "Total number of listeners attached to elements",
			ConstLabels: config.ConstLabels,
		}),

		listenersDetached: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "listeners_detached_total",
			Help:        "Total number of listeners removed from elements",
			ConstLabels: config.ConstLabels,
		}),

		bindings: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bindings",
			Help:        "Number of mounted bindings",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordDrain(d time.Duration) {
	if m == nil {
		return
	}
	m.drains.Inc()
	m.drainDuration.Observe(d.Seconds())
}

func (m *Metrics) recordRender(status string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(status).Inc()
}

func (m *Metrics) recordEvent(typ EventType) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(typ.Name()).Inc()
}

func (m *Metrics) recordListeners(attached, detached int) {
	if m == nil {
		return
	}
	m.listenersAttached.Add(float64(attached))
	m.listenersDetached.Add(float64(detached))
}

func (m *Metrics) recordBinding() {
	if m == nil {
		return
	}
	m.bindings.Inc()
}
