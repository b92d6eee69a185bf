package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func gather(t *testing.T, reg *prometheus.Registry, name string) []*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()
		}
	}
	return nil
}

func label(m *dto.Metric, name string) string {
	for _, l := range m.GetLabel() {
		if l.GetName() == name {
			return l.GetValue()
		}
	}
	return ""
}

func newRouter(mw func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chi.URLParam(r, "id")))
	})
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func TestPrometheusLabelsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(Prometheus(WithRegistry(reg)))

	for _, path := range []string{"/items/1", "/items/2", "/fail", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	counts := map[string]float64{}
	for _, m := range gather(t, reg, "quasar_http_requests_total") {
		counts[label(m, "route")+" "+label(m, "status")] = m.GetCounter().GetValue()
	}

	tests := []struct {
		key  string
		want float64
	}{
		{"/items/{id} 200", 2},
		{"/fail 500", 1},
		{"unmatched 404", 1},
	}
	for _, tt := range tests {
		if got := counts[tt.key]; got != tt.want {
			t.Errorf("requests[%s] = %v, want %v (all: %v)", tt.key, got, tt.want, counts)
		}
	}

	var observed uint64
	for _, m := range gather(t, reg, "quasar_http_request_duration_seconds") {
		observed += m.GetHistogram().GetSampleCount()
	}
	if observed != 4 {
		t.Errorf("duration samples = %d, want 4", observed)
	}
}

func TestPrometheusOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRouter(Prometheus(
		WithRegistry(reg),
		WithNamespace("app"),
		WithSubsystem("web"),
		WithConstLabels(prometheus.Labels{"instance": "a"}),
		WithBuckets([]float64{0.1, 1}),
	))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))

	metrics := gather(t, reg, "app_web_requests_total")
	if len(metrics) != 1 {
		t.Fatalf("app_web_requests_total series = %d, want 1", len(metrics))
	}
	if label(metrics[0], "instance") != "a" {
		t.Errorf("const label missing")
	}
	hist := gather(t, reg, "app_web_request_duration_seconds")
	if len(hist) != 1 || len(hist[0].GetHistogram().GetBucket()) != 2 {
		t.Errorf("histogram buckets not applied")
	}
}

type recordingTracer struct {
	noop.Tracer
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.names = append(r.names, name)
	return r.Tracer.Start(ctx, name, opts...)
}

func TestOpenTelemetryTracesRequests(t *testing.T) {
	tracer := &recordingTracer{}
	r := newRouter(OpenTelemetry(WithTracer(tracer)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/7", nil))

	if rec.Body.String() != "7" {
		t.Errorf("body = %q, want 7", rec.Body.String())
	}
	if len(tracer.names) != 1 || tracer.names[0] != "quasar GET" {
		t.Errorf("spans = %v", tracer.names)
	}
}

func TestOpenTelemetryFilter(t *testing.T) {
	tracer := &recordingTracer{}
	r := newRouter(OpenTelemetry(
		WithTracer(tracer),
		WithFilter(func(r *http.Request) bool { return r.URL.Path != "/fail" }),
	))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if len(tracer.names) != 0 {
		t.Errorf("filtered request traced: %v", tracer.names)
	}
}
