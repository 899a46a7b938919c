package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanOperation names a traced operation.
type SpanOperation string

const (
	// SpanOperationTableInsert covers writing a record to table storage.
	SpanOperationTableInsert SpanOperation = "table.insert"
	// SpanOperationTableSelect covers reading all rows from a table.
	SpanOperationTableSelect SpanOperation = "table.select"

	// SpanOperationCacheGet covers a cache read.
	SpanOperationCacheGet SpanOperation = "cache.get"
	// SpanOperationCacheSet covers a cache write.
	SpanOperationCacheSet SpanOperation = "cache.set"
)

// StartStorageSpan starts a span for a table storage operation.
func StartStorageSpan(ctx context.Context, operation SpanOperation, table string) (context.Context, trace.Span) {
	tracer := otel.Tracer("storage")
	return tracer.Start(ctx, string(operation),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.operation", string(operation)),
			attribute.String("db.sql.table", table),
		),
	)
}

// StartCacheSpan starts a span for a listings cache operation.
func StartCacheSpan(ctx context.Context, operation SpanOperation, key string) (context.Context, trace.Span) {
	tracer := otel.Tracer("cache")
	return tracer.Start(ctx, string(operation),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("cache.operation", string(operation)),
			attribute.String("cache.key", key),
		),
	)
}

// RecordError marks the span as failed and records the error.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// RecordSuccess marks the span as completed successfully.
func RecordSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}
