package telemetry

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewProvider creates a tracer provider that feeds every span to b.
func NewProvider(b *Bridge) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(b),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
}
