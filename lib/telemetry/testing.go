package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var setupTestEnvironments = map[string]bool{}

// sets up telemetry in a testing environment, ensuring that it isn't
// set up more than once. providers carry no exporters so tests don't
// need a collector running.
func SetupForTesting(t testing.TB, serviceName string) func() {
	if setupTestEnvironments[serviceName] {
		return func() {}
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(true)

	tracers := sdktrace.NewTracerProvider()
	meters := sdkmetric.NewMeterProvider()
	otel.SetTracerProvider(tracers)
	otel.SetMeterProvider(meters)

	return func() {
		ctx := context.Background()
		if err := tracers.Shutdown(ctx); err != nil {
			t.Fatal(err)
		}
		if err := meters.Shutdown(ctx); err != nil {
			t.Fatal(err)
		}
	}
}
