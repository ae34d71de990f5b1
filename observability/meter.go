package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/asynckit/logger"
)

// Instrument names.
const (
	MetricItemsStarted   = "async.items.started"
	MetricItemsCompleted = "async.items.completed"
	MetricItemsFailed    = "async.items.failed"
	MetricItemsInflight  = "async.items.inflight"
	MetricRunTotal       = "async.run.total"
	MetricRunDuration    = "async.run.duration"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
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

	readerOpts := []sdkmetric.PeriodicReaderOption{}
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

// RunMetrics holds the instruments recorded for strategy runs. Every
// measurement carries the strategy name as the "strategy" attribute.
type RunMetrics struct {
	itemsStarted   metric.Int64Counter
	itemsCompleted metric.Int64Counter
	itemsFailed    metric.Int64Counter
	itemsInflight  metric.Int64UpDownCounter
	runTotal       metric.Int64Counter
	runDuration    metric.Float64Histogram
}

// NewRunMetrics creates the run instruments on the given meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	itemsStarted, err := meter.Int64Counter(MetricItemsStarted,
		metric.WithDescription("Number of items handed to an iterator"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsStarted, err)
	}

	itemsCompleted, err := meter.Int64Counter(MetricItemsCompleted,
		metric.WithDescription("Number of items whose completion was signaled"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsCompleted, err)
	}

	itemsFailed, err := meter.Int64Counter(MetricItemsFailed,
		metric.WithDescription("Number of items that reported a failure"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricItemsFailed, err)
	}

	itemsInflight, err := meter.Int64UpDownCounter(MetricItemsInflight,
		metric.WithDescription("Number of items currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricItemsInflight, err)
	}

	runTotal, err := meter.Int64Counter(MetricRunTotal,
		metric.WithDescription("Number of finished strategy runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRunTotal, err)
	}

	runDuration, err := meter.Float64Histogram(MetricRunDuration,
		metric.WithDescription("Duration of strategy runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricRunDuration, err)
	}

	return &RunMetrics{
		itemsStarted:   itemsStarted,
		itemsCompleted: itemsCompleted,
		itemsFailed:    itemsFailed,
		itemsInflight:  itemsInflight,
		runTotal:       runTotal,
		runDuration:    runDuration,
	}, nil
}

// RecordItemStart counts a started item and raises the in-flight gauge.
func (m *RunMetrics) RecordItemStart(ctx context.Context, strategy string) {
	attrs := metric.WithAttributes(attribute.String(AttrStrategy, strategy))
	m.itemsStarted.Add(ctx, 1, attrs)
	m.itemsInflight.Add(ctx, 1, attrs)
}

// RecordItemEnd counts a completed item, and a failure when failed is set.
func (m *RunMetrics) RecordItemEnd(ctx context.Context, strategy string, failed bool) {
	attrs := metric.WithAttributes(attribute.String(AttrStrategy, strategy))
	m.itemsInflight.Add(ctx, -1, attrs)
	m.itemsCompleted.Add(ctx, 1, attrs)
	if failed {
		m.itemsFailed.Add(ctx, 1, attrs)
	}
}

// RecordRun records a finished run.
func (m *RunMetrics) RecordRun(ctx context.Context, strategy string, failed int, duration time.Duration) {
	status := StatusOK
	if failed > 0 {
		status = StatusPartialFailure
	}
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrStatus, status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrStrategy, strategy),
	))
}
