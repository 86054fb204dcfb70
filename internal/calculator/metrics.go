package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments, initialised by InitMetrics.
var (
	calculationCounter  metric.Int64Counter
	calculationDuration metric.Float64Histogram
	rejectionCounter    metric.Int64Counter
	lastResultGauge     metric.Float64Gauge
)

// InitMetrics registers the calculator's OTel instruments on the global
// meter provider. Call it after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	calculationCounter, err = meter.Int64Counter("calculator.calculations.total",
		metric.WithDescription("Calculations that produced a result, by operation"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating calculation counter: %w", err)
	}

	calculationDuration, err = meter.Float64Histogram("calculator.calculation.duration",
		metric.WithDescription("Time spent parsing, computing and formatting a calculation"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.05, 0.1, 0.5, 1),
	)
	if err != nil {
		return fmt.Errorf("creating calculation histogram: %w", err)
	}

	rejectionCounter, err = meter.Int64Counter("calculator.rejections.total",
		metric.WithDescription("Calculations answered with success=false, by operation and reason"),
		metric.WithUnit("{calculation}"),
	)
	if err != nil {
		return fmt.Errorf("creating rejection counter: %w", err)
	}

	lastResultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("Value of the most recent successful calculation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
