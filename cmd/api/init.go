package main

import (
	"context"
	"errors"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/config"
	"go-chi-calculator/internal/observability"
)

// initTelemetry installs the metric provider (always, it backs /metrics),
// then the OTLP trace and log exporters when telemetry is enabled, and
// finally the calculator instruments. The returned func shuts all of them
// down.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	metricShutdown, err := observability.InitMetrics(ctx, observability.MetricsOptions{
		ServiceName: cfg.ServiceName,
		OTLP:        cfg.Telemetry,
	})
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, metricShutdown)

	if cfg.Telemetry {
		traceShutdown, err := observability.InitTracing(ctx, cfg.ServiceName)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, traceShutdown)

		logShutdown, err := observability.InitLogging(ctx, cfg.ServiceName)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return shutdown, nil
}
