// Package middleware provides HTTP observability middleware for the live
// server.
//
// # Prometheus Metrics
//
// Prometheus counts requests and observes their duration, labelled by the
// chi route pattern rather than the raw path:
//   - quasar_http_requests_total{route, method, status}
//   - quasar_http_request_duration_seconds{route}
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//
// # OpenTelemetry
//
// OpenTelemetry starts a server span per request and stores it in the
// request context, so spans started by handlers become its children:
//
//	r.Use(middleware.OpenTelemetry(middleware.WithTracerName("my-app")))
package middleware
