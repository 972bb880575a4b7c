package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/board", "/v1/listings", "/", "/docs"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestStartSpan_OnlyHandlersGetChildSpans(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, root := provider.Tracer("test").Start(context.Background(), "root")

	if _, span := startSpan(context.Background(), "httpapi.Handler.GetBoard"); span.SpanContext().IsValid() {
		t.Fatalf("expected no span without a parent")
	}
	_, mw := startSpan(ctx, "httpapi.RequestLogging")
	mw.End()
	if mw.IsRecording() || !root.IsRecording() {
		t.Fatalf("expected middleware span to be a no-op that leaves the request span open")
	}
	_, child := startSpan(ctx, "httpapi.Handler.GetBoard")
	if child == root || !child.SpanContext().IsValid() {
		t.Fatalf("expected a child span for handlers")
	}
}

func TestRouted_RenamesServerSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := provider.Tracer("test").Start(context.Background(), "HTTP POST")

	h := routed("POST /v1/listings/{listingID}/close", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodPost, "/v1/listings/lst-9/close", nil).WithContext(ctx)
	h.ServeHTTP(httptest.NewRecorder(), req)
	span.End()

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected one span, got %d", len(ended))
	}
	if got := ended[0].Name(); got != "POST /v1/listings/{listingID}/close" {
		t.Fatalf("unexpected span name %q", got)
	}
}
