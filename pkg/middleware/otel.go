package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "mwc"

// Span attribute keys.
const (
	AttrSession = attribute.Key("mwc.session_id")
	AttrHID     = attribute.Key("mwc.hid")
	AttrEvent   = attribute.Key("mwc.event")
	AttrMethod  = attribute.Key("mwc.method")
	AttrTag     = attribute.Key("mwc.tag")
)

// OTelConfig configures the Tracer.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "mwc").
	TracerName string

	// Provider overrides the global tracer provider. Tests use this to
	// record spans.
	Provider trace.TracerProvider
}

// OTelOption configures the Tracer.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = tp
	}
}

// Tracer starts spans for session activity. A nil *Tracer starts no-op
// spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer from the global provider unless an option
// overrides it.
func NewTracer(opts ...OTelOption) *Tracer {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		return &Tracer{tracer: config.Provider.Tracer(config.TracerName)}
	}
	return &Tracer{tracer: otel.Tracer(config.TracerName)}
}

func (t *Tracer) start(ctx context.Context, name string, kind trace.SpanKind, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil || t.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return t.tracer.Start(ctx, name, trace.WithSpanKind(kind), trace.WithAttributes(attrs...))
}

// StartEvent starts the span covering dispatch of a browser event.
func (t *Tracer) StartEvent(ctx context.Context, session, hid, event string) (context.Context, trace.Span) {
	return t.start(ctx, "mwc.event", trace.SpanKindServer,
		AttrSession.String(session), AttrHID.String(hid), AttrEvent.String(event))
}

// StartCall starts the span covering a method call on a browser node.
func (t *Tracer) StartCall(ctx context.Context, session, hid, tag, method string) (context.Context, trace.Span) {
	return t.start(ctx, "mwc.call", trace.SpanKindClient,
		AttrSession.String(session), AttrHID.String(hid), AttrTag.String(tag), AttrMethod.String(method))
}

// End records err on span, sets its status and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
