package middleware

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"
)

func TestNilTracer(t *testing.T) {
	var tr *Tracer
	ctx := context.Background()
	got, span := tr.StartEvent(ctx, "s", "h1", "closed")
	if got != ctx {
		t.Error("nil tracer should return the input context")
	}
	End(span, nil)
}

func TestTracerSpans(t *testing.T) {
	tr := NewTracer(WithTracerName("test"), WithTracerProvider(noop.NewTracerProvider()))

	_, span := tr.StartEvent(context.Background(), "s", "h2", "closing")
	End(span, nil)

	_, span = tr.StartCall(context.Background(), "s", "h2", "mwc-dialog", "show")
	End(span, errors.New("failed"))
}

func TestNewTracerDefaults(t *testing.T) {
	if tr := NewTracer(); tr.tracer == nil {
		t.Error("NewTracer() should use the global provider")
	}
}
