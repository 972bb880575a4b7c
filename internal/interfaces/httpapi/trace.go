package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("lft-board/internal/interfaces/httpapi")

// startSpan opens a child span for handler methods only. Middleware,
// helpers and untraced routes get a no-op span that is safe to End.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !strings.HasPrefix(name, handlerSpanPrefix) {
		return ctx, noop.Span{}
	}
	return apiTracer.Start(ctx, name)
}

// RequestTracing opens the server span. It is named by method until the mux
// matches a route, see routed.
func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "lft-board-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

// routed renames the server span after the matched pattern so listing and
// tag ids never end up in span names.
func routed(pattern string, next http.Handler) http.Handler {
	route := pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		route = path
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := trace.SpanFromContext(r.Context())
		if span.IsRecording() {
			span.SetName(r.Method + " " + route)
			span.SetAttributes(attribute.String("http.route", route))
		}
		next.ServeHTTP(w, r)
	})
}

func tagPrincipal(ctx context.Context, userID string, moderator bool) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("enduser.id", userID),
		attribute.Bool("lft.moderator", moderator),
	)
}
