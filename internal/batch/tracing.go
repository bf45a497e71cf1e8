package batch

import (
	"context"

	"github.com/signalsfoundry/constellation-validator/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/constellation-validator/internal/batch"

// startRecordSpan opens a span covering one record's parse-and-validate
// step. The span is a no-op unless tracing has been initialised.
func startRecordSpan(ctx context.Context, line int) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)
	return tracer.Start(ctx, "batch/validate_record",
		trace.WithAttributes(attribute.Int("record.line", line)))
}

// annotateVerdict records the validation verdict on the record span.
func annotateVerdict(span trace.Span, res model.ValidationResult) {
	span.SetAttributes(
		attribute.Bool("validation.valid", res.IsValid),
		attribute.Int("validation.errors", len(res.Errors)),
		attribute.Int("validation.warnings", len(res.Warnings)),
	)
}
