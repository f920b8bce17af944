package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var (
	globalMeterProvider   metric.MeterProvider
	globalMetricsShutdown func(context.Context) error
	meterMu               sync.RWMutex

	metrics     *Metrics
	metricsOnce sync.Once
)

// Metrics holds the registered metric instruments
type Metrics struct {
	CommandCounter      metric.Int64Counter
	CommandDuration     metric.Float64Histogram
	CommandErrorCounter metric.Int64Counter

	// PlanTaskCounter counts tasks placed into generated plans;
	// PlanConflictCounter counts reported capacity conflicts
	PlanTaskCounter     metric.Int64Counter
	PlanConflictCounter metric.Int64Counter
}

// InitMetricsProvider initializes the meter provider. Disabled or
// endpoint-less configs install a noop. Returns the shutdown function.
func InitMetricsProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	meterMu.Lock()
	defer meterMu.Unlock()

	if !cfg.Enabled || cfg.Endpoint == "" {
		globalMeterProvider = otel.GetMeterProvider()
		globalMetricsShutdown = func(context.Context) error { return nil }
		return globalMetricsShutdown, nil
	}

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource for metrics: %w", err)
	}

	exporter, err := otlpmetrichttp.New(
		ctx,
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		otlpmetrichttp.WithCompression(otlpmetrichttp.GzipCompression),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second)),
		),
	)

	globalMeterProvider = mp
	otel.SetMeterProvider(mp)
	globalMetricsShutdown = func(shutdownCtx context.Context) error {
		return mp.Shutdown(shutdownCtx)
	}

	if err := initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return globalMetricsShutdown, nil
}

func initMetrics() error {
	var initErr error
	metricsOnce.Do(func() {
		meter := globalMeterProvider.Meter("github.com/felixgeelhaar/missionmap")
		m := &Metrics{}

		m.CommandCounter, initErr = meter.Int64Counter(
			"missionmap.command.invocations",
			metric.WithDescription("Total number of command invocations"),
			metric.WithUnit("{invocation}"),
		)
		if initErr != nil {
			return
		}

		m.CommandDuration, initErr = meter.Float64Histogram(
			"missionmap.command.duration",
			metric.WithDescription("Command execution duration"),
			metric.WithUnit("ms"),
		)
		if initErr != nil {
			return
		}

		m.CommandErrorCounter, initErr = meter.Int64Counter(
			"missionmap.command.errors",
			metric.WithDescription("Total number of failed commands"),
			metric.WithUnit("{error}"),
		)
		if initErr != nil {
			return
		}

		m.PlanTaskCounter, initErr = meter.Int64Counter(
			"missionmap.plan.tasks",
			metric.WithDescription("Total number of tasks placed into generated plans"),
			metric.WithUnit("{task}"),
		)
		if initErr != nil {
			return
		}

		m.PlanConflictCounter, initErr = meter.Int64Counter(
			"missionmap.plan.conflicts",
			metric.WithDescription("Total number of capacity conflicts in generated plans"),
			metric.WithUnit("{conflict}"),
		)
		if initErr != nil {
			return
		}

		metrics = m
	})
	return initErr
}

func loadMetrics() *Metrics {
	meterMu.RLock()
	defer meterMu.RUnlock()
	return metrics
}

// RecordCommand records one command invocation with its duration and
// outcome. Safe to call with metrics uninitialized.
func RecordCommand(ctx context.Context, name string, duration time.Duration, err error) {
	m := loadMetrics()
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("command", name))
	m.CommandCounter.Add(ctx, 1, attrs)
	m.CommandDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	if err != nil {
		m.CommandErrorCounter.Add(ctx, 1, attrs)
	}
}

// RecordPlan records the size and conflict count of one generated plan.
// Safe to call with metrics uninitialized.
func RecordPlan(ctx context.Context, taskCount, conflictCount int) {
	m := loadMetrics()
	if m == nil {
		return
	}

	m.PlanTaskCounter.Add(ctx, int64(taskCount))
	m.PlanConflictCounter.Add(ctx, int64(conflictCount))
}
