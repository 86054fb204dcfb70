package observability

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRecordErrorLogsAttributesAndRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	ctx := ContextWithRequestID(context.Background(), "req-1")
	span := trace.SpanFromContext(ctx)

	counter, err := otel.Meter("test").Int64Counter("test.errors.total")
	if err != nil {
		t.Fatalf("creating counter: %v", err)
	}

	RecordError(
		ctx,
		span,
		zap.New(core),
		counter,
		"calculation rejected",
		errors.New("division by zero"),
		attribute.String("operation", "divide"),
		attribute.String("reason", "divide_by_zero"),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Message != "calculation rejected" {
		t.Fatalf("expected message %q, got %q", "calculation rejected", entry.Message)
	}
	if entry.Level != zap.WarnLevel {
		t.Fatalf("expected warn level, got %s", entry.Level)
	}

	fields := entry.ContextMap()
	want := map[string]string{
		"operation":  "divide",
		"reason":     "divide_by_zero",
		"request_id": "req-1",
		"error":      "division by zero",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Fatalf("field %q: expected %q, got %#v", k, v, fields[k])
		}
	}
}
