package middleware

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/dashboard/internal/metrics"
	"github.com/fastygo/dashboard/pkg/httpcontext"
)

const unmatchedRoute = "unmatched"

// Instrument assigns the request id, writes one access log line per request and,
// when m is non-nil, records request metrics labelled by matched route.
func Instrument(m *metrics.HTTP, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			requestID := httpcontext.RequestID(ctx)
			if m != nil {
				m.Begin()
			}

			next(ctx)

			elapsed := time.Since(start)
			status := ctx.Response.StatusCode()
			route, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
			if route == "" {
				route = unmatchedRoute
			}
			if m != nil {
				m.Observe(string(ctx.Method()), route, status, elapsed)
			}

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", status),
				zap.Duration("duration", elapsed),
			}
			if identity, ok := httpcontext.IdentityFrom(ctx); ok {
				fields = append(fields, zap.String("user_id", identity.UserID))
			}
			if status >= fasthttp.StatusInternalServerError {
				logger.Error("request", fields...)
				return
			}
			logger.Info("request", fields...)
		}
	}
}
