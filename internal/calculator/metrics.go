package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Instruments shared by every calculator handler, all labelled with the
// operation name.
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	resultGauge  metric.Float64Gauge
)

// InitMetrics creates the calculator instruments from the global
// MeterProvider. Handlers assume it has run; call it after
// observability.InitMetrics so the instruments land on /metrics.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	if opsCounter, err = meter.Int64Counter("calculator.requests.total",
		metric.WithDescription("Answered add and subtract requests"),
		metric.WithUnit("{request}"),
	); err != nil {
		return fmt.Errorf("creating requests counter: %w", err)
	}

	if opsHistogram, err = meter.Float64Histogram("calculator.compute.duration",
		metric.WithDescription("Time spent computing a result"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.05, 0.1, 0.5, 1),
	); err != nil {
		return fmt.Errorf("creating compute histogram: %w", err)
	}

	if errorCounter, err = meter.Int64Counter("calculator.rejected.total",
		metric.WithDescription("Rejected requests by operation and status"),
		metric.WithUnit("{request}"),
	); err != nil {
		return fmt.Errorf("creating rejected counter: %w", err)
	}

	if resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("Result of the most recent answered request"),
		metric.WithUnit("1"),
	); err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
