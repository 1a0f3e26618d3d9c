package rmi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("rmi")

// traceExamine wraps one Examine call in an "rmi.examine" span carrying the
// candidate interface name. The cache-hit/miss outcome is not recorded on
// the span.
func traceExamine(name string) (context.Context, trace.Span) {
	return tracer.Start(context.Background(), "rmi.examine", trace.WithAttributes(
		attribute.String("rmi.interface", name),
	))
}

// traceResolve wraps the resolve pass for a newly-validated interface.
func traceResolve(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "rmi.resolve", trace.WithAttributes(
		attribute.String("rmi.interface", name),
	))
}
