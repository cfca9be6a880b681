package telemetry

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
)

var (
	EnableDebug     = false
	EnableTelemetry = false
)

var serviceName = "pagelayout"

func init() {
	EnableDebug = os.Getenv("DEBUG") != ""
	EnableTelemetry = os.Getenv("TELEMETRY") != ""
}

// ShutdownFunc flushes and stops the installed providers
type ShutdownFunc func(context.Context) error

// Setup installs OTLP trace, metric and log providers for service when
// TELEMETRY is set in the environment. The log provider replaces the
// default slog logger. Without TELEMETRY nothing is installed and the
// returned func does nothing.
func Setup(ctx context.Context, service string) (ShutdownFunc, error) {
	serviceName = service

	if !EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(attribute.String("service.name", service)),
	)

	if err != nil {
		return nil, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	var shutdowns []ShutdownFunc

	shutdown := func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}

		return errors.Join(errs...)
	}

	for _, setup := range []func(context.Context, *sdkresource.Resource, string) (ShutdownFunc, error){
		setupTracer,
		setupMeter,
		setupLogger,
	} {
		fn, err := setup(ctx, resource, service)

		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}

		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// ServiceName returns the service name passed to the last Setup
func ServiceName() string {
	return serviceName
}
