package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises failure bookkeeping across domains: it records err
// on the span, increments counter with attrs, and logs msg with the same
// attributes plus the request id. Writing the HTTP reply is left to the
// caller, since domains answer failures differently.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, msg string, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	counter.Add(ctx, 1, metric.WithAttributes(attrs...))

	fields := make([]zap.Field, 0, len(attrs)+2)
	for _, kv := range attrs {
		fields = append(fields, zap.String(string(kv.Key), kv.Value.Emit()))
	}
	fields = append(fields,
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	logger.Warn(msg, fields...)
}
