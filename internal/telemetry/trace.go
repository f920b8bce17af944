package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// StartCommandSpan creates a span for one CLI command execution.
//
// Usage:
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "generate")
//	defer span.End()
func StartCommandSpan(ctx context.Context, cmdName string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("commands")
	ctx, span := tracer.Start(ctx, "command."+cmdName)

	span.SetAttributes(
		attribute.String("command", cmdName),
		attribute.String("component", "cli"),
	)
	return ctx, span
}

// StartStageSpan creates a span for one pipeline stage (analysis,
// decompose, taskgraph, mission).
//
// Usage:
//
//	ctx, span := telemetry.StartStageSpan(ctx, "taskgraph")
//	defer span.End()
func StartStageSpan(ctx context.Context, stage string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer("pipeline")
	ctx, span := tracer.Start(ctx, "pipeline."+stage)

	span.SetAttributes(
		attribute.String("stage", stage),
		attribute.String("component", "pipeline"),
	)
	return ctx, span
}

// RecordSuccess marks a span successful with optional result attributes
func RecordSuccess(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	span.SetStatus(codes.Ok, "")
}

// RecordError records a failure on the span. A nil error is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.Bool("error", true))
}
