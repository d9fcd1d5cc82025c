package observability

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/whispir/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	Environment    string `mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string        `mapstructure:"endpoint"`
	Insecure bool          `mapstructure:"insecure"`
	Interval time.Duration `mapstructure:"interval"`
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter installs a periodic OTLP meter provider as the global provider.
// The caller shuts it down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// ClientMetrics holds the instruments recorded by the HTTP adapter.
type ClientMetrics struct {
	attempts metric.Int64Counter
	duration metric.Float64Histogram
	retries  metric.Int64Counter
	failures metric.Int64Counter
}

// NewClientMetrics creates the client instruments on meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	attempts, err := meter.Int64Counter("whispir.request.total",
		metric.WithDescription("HTTP exchanges with the Whispir API, per attempt"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating whispir.request.total counter: %w", err)
	}

	duration, err := meter.Float64Histogram("whispir.request.duration",
		metric.WithDescription("Duration of a single attempt in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating whispir.request.duration histogram: %w", err)
	}

	retries, err := meter.Int64Counter("whispir.request.retry",
		metric.WithDescription("Retries scheduled, by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating whispir.request.retry counter: %w", err)
	}

	failures, err := meter.Int64Counter("whispir.request.failure",
		metric.WithDescription("Exchanges that produced no usable response, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating whispir.request.failure counter: %w", err)
	}

	return &ClientMetrics{
		attempts: attempts,
		duration: duration,
		retries:  retries,
		failures: failures,
	}, nil
}

// RecordAttempt records one completed exchange. status is 0 when no response
// was obtained.
func (m *ClientMetrics) RecordAttempt(ctx context.Context, method string, status int, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("status", strconv.Itoa(status)),
	)
	m.attempts.Add(ctx, 1, attrs)
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("method", method)))
}

// RecordRetry records a scheduled retry.
func (m *ClientMetrics) RecordRetry(ctx context.Context, reason string) {
	m.retries.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordFailure records an exchange that failed before or after the response.
func (m *ClientMetrics) RecordFailure(ctx context.Context, kind string) {
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
