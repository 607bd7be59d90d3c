package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.EventDispatched("closed", 5*time.Millisecond)
	m.EventDispatched("closed", 5*time.Millisecond)
	m.EventDecodeFailed()
	m.CommandSent("call")
	m.CommandFailed("call")

	tests := []struct {
		name   string
		metric string
		labels map[string]string
		want   float64
	}{
		{"active sessions", "test_active_sessions", nil, 1},
		{"events", "test_events_total", map[string]string{"event": "closed"}, 2},
		{"event duration samples", "test_event_duration_seconds", map[string]string{"event": "closed"}, 2},
		{"decode errors", "test_event_decode_errors_total", nil, 1},
		{"commands", "test_commands_total", map[string]string{"op": "call"}, 1},
		{"command errors", "test_command_errors_total", map[string]string{"op": "call"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gathered(t, reg, tt.metric, tt.labels); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// gathered returns the value of a counter or gauge, or the sample count of a
// histogram, for the series matching labels.
func gathered(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() = %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	series:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue series
				}
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.SessionOpened()
	m.SessionClosed()
	m.EventDispatched("x", time.Second)
	m.EventDecodeFailed()
	m.CommandSent("call")
	m.CommandFailed("call")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	if h := m.HTTP(next); h == nil {
		t.Error("HTTP on nil metrics should return next")
	}
}

func TestMetricsHTTP(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))

	h := m.HTTP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if got := gathered(t, reg, "mwc_http_requests_total", map[string]string{"method": "GET", "code": "200"}); got != 2 {
		t.Errorf("200s = %v, want 2", got)
	}
	if got := gathered(t, reg, "mwc_http_requests_total", map[string]string{"method": "GET", "code": "404"}); got != 1 {
		t.Errorf("404s = %v, want 1", got)
	}
}

func TestMetricsOptions(t *testing.T) {
	config := defaultMetricsConfig()
	reg := prometheus.NewRegistry()
	for _, opt := range []MetricsOption{
		WithNamespace("ns"),
		WithSubsystem("sub"),
		WithConstLabels(prometheus.Labels{"app": "demo"}),
		WithBuckets([]float64{1, 2}),
		WithRegistry(reg),
	} {
		opt(&config)
	}
	if config.Namespace != "ns" || config.Subsystem != "sub" || config.ConstLabels["app"] != "demo" ||
		len(config.Buckets) != 2 || config.Registry != reg {
		t.Errorf("config = %+v", config)
	}
}
