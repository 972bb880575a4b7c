package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/lft-board/internal/platform/logging"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type RouterOptions struct {
	Logger             *logging.Logger
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

// NewRouter wires every route behind tracing, access logging, CORS and
// panic recovery, outermost first.
func NewRouter(handler *Handler, verifier TokenVerifier, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerPublicRoutes(mux, handler, verifier)
	registerAuthorizedRoutes(mux, handler, verifier)
	registerModeratorRoutes(mux, handler, verifier)

	return RequestTracing(RequestLogging(logger, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			ctx := r.Context()
			span := trace.SpanFromContext(ctx)
			span.RecordError(fmt.Errorf("panic: %v", rec))
			span.SetStatus(codes.Error, "panic")
			logger.ErrorContext(ctx, "panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", zap.StackSkip("stack", 2),
			)
			writeInternalError(ctx, w)
		}()
		next.ServeHTTP(w, r)
	})
}
