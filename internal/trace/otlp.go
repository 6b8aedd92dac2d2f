// Package trace wires OpenTelemetry tracing for the editor.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// EndpointEnv enables OTLP export when set.
	EndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"
	// ServiceNameEnv overrides the reported service name.
	ServiceNameEnv = "OTEL_SERVICE_NAME"
	// DefaultServiceName is reported when ServiceNameEnv is unset.
	DefaultServiceName = "pagecells"
)

// Provider owns the tracer provider of the process.
type Provider struct {
	provider oteltrace.TracerProvider
	shutdown func(context.Context) error
	enabled  bool
}

// NewProvider exports spans over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT
// is set. Without it the provider is a no-op and nothing leaves the
// process.
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv(EndpointEnv)
	if endpoint == "" {
		return &Provider{
			provider: noop.NewTracerProvider(),
			shutdown: func(context.Context) error { return nil },
		}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collectors; TLS endpoints need OTEL_EXPORTER_OTLP_* env
	)
	if err != nil {
		return nil, err
	}
	return newSDKProvider(sdktrace.WithBatcher(exporter)), nil
}

// NewWithProcessor builds an SDK provider around a span processor, e.g. a
// tracetest.SpanRecorder.
func NewWithProcessor(sp sdktrace.SpanProcessor) *Provider {
	return newSDKProvider(sdktrace.WithSpanProcessor(sp))
}

func newSDKProvider(opt sdktrace.TracerProviderOption) *Provider {
	serviceName := os.Getenv(ServiceNameEnv)
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	tp := sdktrace.NewTracerProvider(opt, sdktrace.WithResource(res))
	return &Provider{provider: tp, shutdown: tp.Shutdown, enabled: true}
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Tracer returns a named tracer.
func (p *Provider) Tracer(name string) oteltrace.Tracer {
	if p == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return p.provider.Tracer(name)
}

// Install makes p the global tracer provider.
func (p *Provider) Install() {
	if p == nil {
		return
	}
	otel.SetTracerProvider(p.provider)
}

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.shutdown(ctx)
}
