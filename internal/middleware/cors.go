package middleware

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// CORS allows the configured browser origins. "*" admits any origin.
type CORS struct {
	allowedOrigins []string
	allowAll       bool
}

func NewCORS(allowedOrigins []string) *CORS {
	c := &CORS{}
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			c.allowAll = true
		}
		c.allowedOrigins = append(c.allowedOrigins, origin)
	}
	return c
}

func (c *CORS) Handler(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		origin := string(ctx.Request.Header.Peek(fasthttp.HeaderOrigin))
		if origin != "" && c.isOriginAllowed(origin) {
			h := &ctx.Response.Header
			h.Set(fasthttp.HeaderAccessControlAllowOrigin, origin)
			h.Set(fasthttp.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
			h.Set(fasthttp.HeaderAccessControlAllowHeaders, "Content-Type, Authorization, X-Request-ID")
			h.Set(fasthttp.HeaderAccessControlExposeHeaders, "X-Request-ID")
			h.Set(fasthttp.HeaderAccessControlMaxAge, "3600")
			h.Add(fasthttp.HeaderVary, fasthttp.HeaderOrigin)
		}

		if ctx.IsOptions() {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		next(ctx)
	}
}

func (c *CORS) isOriginAllowed(origin string) bool {
	if c.allowAll {
		return true
	}
	for _, allowed := range c.allowedOrigins {
		if allowed == origin {
			return true
		}
	}
	return false
}
