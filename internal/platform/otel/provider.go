// Package otel wires OpenTelemetry tracing for the royalspells binaries.
package otel

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Steffo99/royalspells/internal/platform/config"
)

// InstrumentationName scopes every tracer created through Tracer.
const InstrumentationName = "github.com/Steffo99/royalspells"

// Settings selects where spans are exported.
type Settings struct {
	Endpoint string `env:"ROYALSPELLS_OTEL_ENDPOINT"`
	Enabled  string `env:"ROYALSPELLS_OTEL_ENABLED"`
}

// Active reports whether tracing should be exported at all.
func (s Settings) Active() bool {
	if strings.EqualFold(strings.TrimSpace(s.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(s.Endpoint) != ""
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when ROYALSPELLS_OTEL_ENDPOINT is empty or
// ROYALSPELLS_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and no global provider is registered.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var settings Settings
	if err := config.ParseEnv(&settings); err != nil {
		return noop, err
	}
	return SetupWith(ctx, serviceName, settings)
}

// SetupWith is Setup with explicit settings.
func SetupWith(ctx context.Context, serviceName string, settings Settings) (func(context.Context) error, error) {
	if !settings.Active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceNamespace("royalspells"),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider. Before Setup registers a
// provider, spans are no-ops.
func Tracer(component string) trace.Tracer {
	return otel.Tracer(InstrumentationName + "/" + component)
}

func noop(context.Context) error { return nil }
