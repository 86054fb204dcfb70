package main

import (
	"context"
	"errors"

	"web-calculator/internal/calculator"
	"web-calculator/internal/config"
	"web-calculator/internal/observability"
)

// initTelemetry wires the OTLP exporters when OTEL_ENABLED is set and always
// registers the calculator's instruments, which fall back to the global
// no-op meter otherwise. The returned func flushes every started provider.
func initTelemetry(ctx context.Context, cfg config.Server) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	if cfg.OTelEnabled {
		inits := []func(context.Context, string) (func(context.Context) error, error){
			observability.InitTracing,
			observability.InitMetrics,
			observability.InitLogging,
		}
		for _, start := range inits {
			stop, err := start(ctx, cfg.ServiceName)
			if err != nil {
				_ = shutdown(ctx)
				return nil, err
			}
			shutdowns = append(shutdowns, stop)
		}
	}

	if err := calculator.InitMetrics(); err != nil {
		_ = shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
