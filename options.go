package sdk

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/toolforge-ai/sdk/marketplace"
)

// Option configures the SDK.
type Option func(*config)

// config holds configuration for the SDK instance.
type config struct {
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
	store  marketplace.Store
}

// WithLogger sets a custom logger for the SDK.
// If not provided, a default logger will be created.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for distributed tracing.
// This enables observability across definition testing and marketplace
// operations.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *config) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for marketplace operation counters.
func WithMeter(meter metric.Meter) Option {
	return func(c *config) {
		c.meter = meter
	}
}

// WithStore sets the marketplace storage backend.
// If not provided, an in-memory store is used.
//
// Example:
//
//	store, err := marketplace.NewRedisStore(marketplace.RedisOptions{
//		URL: "redis://localhost:6379",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	kit, err := sdk.New(sdk.WithStore(store))
func WithStore(store marketplace.Store) Option {
	return func(c *config) {
		c.store = store
	}
}
