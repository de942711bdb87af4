package logging

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/dilipkumar2k6/uuid-generation/internal/tracing"
)

const (
	requestIDLogKey = "request_id"
	traceIDLogKey   = "trace_id"
	spanIDLogKey    = "span_id"
)

func Middleware(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		mLogger := L(ctx).With(slog.String("endpoint", r.URL.RequestURI()))

		if span := trace.SpanContextFromContext(ctx); span.HasTraceID() {
			mLogger = mLogger.With(slog.String(traceIDLogKey, span.TraceID().String()))
			tracing.TraceValue(ctx, traceIDLogKey, span.TraceID().String())
			mLogger = mLogger.With(slog.String(spanIDLogKey, span.SpanID().String()))
		}

		ctx = ContextWithLogger(ctx, mLogger)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}
