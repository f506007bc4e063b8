// Package transport – OpenTelemetry client spans.
//
// Each round trip gets a client-kind span named after the verb and the
// cardinality-collapsed path (the same collapsing the metrics use). Transport
// failures are recorded on the span; HTTP rejections are attributes, not span
// errors, mirroring how the rest of the layer treats status codes as data.
package transport

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies this instrumentation scope.
const tracerName = "github.com/jinacker/smart-wms-gateway/internal/transport"

// Tracing wraps a Doer with per-request spans.
type Tracing struct {
	next Doer
}

// NewTracing wraps next.
func NewTracing(next Doer) *Tracing {
	return &Tracing{next: next}
}

// Do implements Doer.
func (t *Tracing) Do(ctx context.Context, req *Request) (*Response, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, req.Method+" "+metricPath(req.Path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	resp, err := t.next.Do(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= 500 {
		span.SetStatus(codes.Error, "server error")
	}
	return resp, nil
}
