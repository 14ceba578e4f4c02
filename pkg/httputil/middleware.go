package httputil

import (
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// Middleware is a function that wraps a handler
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies middleware to a handler in declaration order
func Chain(handler fasthttp.RequestHandler, middleware ...Middleware) fasthttp.RequestHandler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

// NewRateLimitMiddleware limits request throughput with a token bucket.
// Requests beyond the burst are rejected with 429.
func NewRateLimitMiddleware(rps float64, burst int, logger zerolog.Logger) Middleware {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			if !limiter.Allow() {
				logger.Warn().
					Str("path", string(ctx.Path())).
					Msg("rate limit exceeded")
				WriteError(ctx, fasthttp.StatusTooManyRequests, "too many requests")
				return
			}
			next(ctx)
		}
	}
}
