// Package middleware provides the observability layer of the server.
//
// # Prometheus Metrics
//
// Metrics holds the collectors for sessions, DOM events and node commands
// (namespace "mwc" by default):
//
//   - mwc_active_sessions: current number of live WebSocket sessions
//
//   - mwc_events_total{event}: DOM events dispatched to nodes
//
//   - mwc_event_duration_seconds{event}: time spent running callbacks
//
//   - mwc_event_decode_errors_total: malformed event frames
//
//   - mwc_commands_total{op}: commands sent to browsers
//
//   - mwc_command_errors_total{op}: commands browsers reported as failed
//
//   - mwc_http_requests_total{method,code}: HTTP requests served
//
//     m := middleware.NewMetrics(middleware.WithRegistry(reg))
//     r.Use(m.HTTP)
//
// # OpenTelemetry
//
// Tracer starts a span per dispatched event (mwc.event) and per node method
// call (mwc.call) using the global tracer provider. Configure the provider
// in main() before starting the server:
//
//	otel.SetTracerProvider(tp)
//
// # Logging
//
// RequestLogger logs one structured line per HTTP request through slog and
// Recoverer turns handler panics into 500 responses.
package middleware
