// Package telemetry instala el TracerProvider de OpenTelemetry (exportación OTLP por gRPC).
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jhoicas/foodzo-api/pkg/config"
)

// ShutdownFunc vacía los spans pendientes y cierra el exportador.
type ShutdownFunc func(context.Context) error

// Setup registra el proveedor global. Sin OTEL_EXPORTER_OTLP_ENDPOINT no se instala nada y los
// tracers quedan en no-op.
func Setup(ctx context.Context, cfg config.TelemetryConfig, service, env string) (ShutdownFunc, error) {
	if !cfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("telemetry: exportador OTLP: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(Resource(service, env)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Resource identifica el servicio en el backend de trazas.
func Resource(service, env string) *resource.Resource {
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", service),
		attribute.String("deployment.environment", env),
	))
	if err != nil {
		// Solo falla con schema URLs en conflicto; el recurso propio alcanza.
		return resource.NewSchemaless(attribute.String("service.name", service))
	}
	return res
}
