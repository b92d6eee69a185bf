package quasar

import (
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/quasar-dev/quasar/pkg/quasar"

// Option configures an AppState.
type Option func(*AppState)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *AppState) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *AppState) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for event and drain spans.
// Default: the global provider's tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *AppState) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithKeyGenerator sets the function producing view key names.
// Default: random UUIDs.
func WithKeyGenerator(fn func() string) Option {
	return func(s *AppState) {
		if fn != nil {
			s.newKey = fn
		}
	}
}

func defaultOptions(s *AppState) {
	s.logger = slog.Default()
	s.tracer = otel.Tracer(tracerName)
	s.newKey = uuid.NewString
}
