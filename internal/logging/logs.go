package logging

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "rippl-backend"

var (
	meter  = otel.Meter(instrumentationName)
	logger = otelslog.NewLogger(instrumentationName)
)

var transitions metric.Int64Counter

func init() {
	c, err := meter.Int64Counter("rippl_task_transitions_total",
		metric.WithDescription("Task lifecycle transitions"),
		metric.WithUnit("{transition}"))
	if err != nil {
		otel.Handle(err)
		return
	}
	transitions = c
}

func Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logger.Log(ctx, level, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	Log(ctx, slog.LevelInfo, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	Log(ctx, slog.LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	Log(ctx, slog.LevelError, msg, args...)
}

// Logger exposes the bridged slog logger for libraries that want one.
func Logger() *slog.Logger {
	return logger
}

// RecordTransition counts one status change.
func RecordTransition(ctx context.Context, from, to string) {
	if transitions == nil {
		return
	}
	transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

func InitializeFloatCounter(name, description, unit string) (metric.Float64Counter, error) {
	counter, err := meter.Float64Counter(name,
		metric.WithDescription(description),
		metric.WithUnit(unit))
	if err != nil {
		Error(context.Background(), "failed to create metric", "name", name, "err", err)
		return nil, err
	}
	return counter, nil
}
