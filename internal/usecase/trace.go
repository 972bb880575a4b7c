package usecase

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var usecaseTracer = otel.Tracer("lft-board/internal/usecase")

// startUsecaseSpan only continues an existing trace; background work without
// a parent gets a no-op span.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noop.Span{}
	}
	return usecaseTracer.Start(ctx, name)
}

// failSpan marks span as failed when err is a server-side failure and returns
// err unchanged. Caller mistakes such as bad input or a missing listing are
// not span errors.
func failSpan(span trace.Span, err error) error {
	if err == nil || isCallerError(err) {
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func isCallerError(err error) bool {
	for _, target := range []error{ErrInvalidInput, ErrNotFound, ErrUnauthorized, ErrForbidden, ErrConflict, ErrRateLimited} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
