package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestStartCommandSpan(t *testing.T) {
	ctx, span := StartCommandSpan(context.Background(), "generate")
	defer span.End()

	if span == nil {
		t.Fatal("expected a span, got nil")
	}
	if got := trace.SpanFromContext(ctx); got != span {
		t.Fatal("span not attached to returned context")
	}
}

func TestStartStageSpan(t *testing.T) {
	ctx, span := StartStageSpan(context.Background(), "taskgraph")
	defer span.End()

	if span == nil {
		t.Fatal("expected a span, got nil")
	}
	if got := trace.SpanFromContext(ctx); got != span {
		t.Fatal("span not attached to returned context")
	}
}

func TestRecordSuccess(t *testing.T) {
	_, span := StartCommandSpan(context.Background(), "analyze")
	defer span.End()

	RecordSuccess(span, attribute.Int("tasks", 12))
}

func TestRecordError(t *testing.T) {
	_, span := StartCommandSpan(context.Background(), "validate")
	defer span.End()

	RecordError(span, errors.New("boom"))
	RecordError(span, nil)
}
