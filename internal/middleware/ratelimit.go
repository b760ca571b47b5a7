package middleware

import (
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fastygo/dashboard/domain"
	"github.com/fastygo/dashboard/pkg/httpcontext"
)

const maxTrackedClients = 10000

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket each.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewRateLimiter returns nil when requestsPerSecond is not positive; a nil limiter passes everything through.
func NewRateLimiter(requestsPerSecond float64, burst int, logger *zap.Logger) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		idle:     10 * time.Minute,
		now:      time.Now,
		logger:   logger,
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		if len(rl.visitors) >= maxTrackedClients {
			rl.evictLocked(now)
		}
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evictLocked drops idle visitors, or everything when none are idle.
func (rl *RateLimiter) evictLocked(now time.Time) {
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idle {
			delete(rl.visitors, key)
		}
	}
	if len(rl.visitors) >= maxTrackedClients {
		rl.visitors = make(map[string]*visitor)
	}
}

func (rl *RateLimiter) Handler(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	if rl == nil {
		return next
	}
	return func(ctx *fasthttp.RequestCtx) {
		key := ctx.RemoteIP().String()
		if !rl.allow(key) {
			rl.logger.Warn("rate limit exceeded",
				zap.String("request_id", httpcontext.RequestID(ctx)),
				zap.String("client", key),
				zap.ByteString("path", ctx.Path()))
			ctx.Response.Header.Set(fasthttp.HeaderRetryAfter, "1")
			writeError(ctx, fasthttp.StatusTooManyRequests, domain.ErrTooManyRequests)
			return
		}
		next(ctx)
	}
}
