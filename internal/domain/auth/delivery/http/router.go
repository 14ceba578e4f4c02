package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// Authentication endpoints are unauthenticated and brute-forceable, so
// they get their own token bucket.
const (
	rateLimitRPS   = 5
	rateLimitBurst = 10
)

// Router registers authentication HTTP routes
type Router struct {
	handler   *AuthHandler
	rateLimit httputil.Middleware
	logger    zerolog.Logger
}

// NewRouter creates a new authentication router
func NewRouter(handler *AuthHandler, logger zerolog.Logger) *Router {
	return &Router{
		handler:   handler,
		rateLimit: httputil.NewRateLimitMiddleware(rateLimitRPS, rateLimitBurst, logger),
		logger:    logger,
	}
}

// RegisterRoutes registers authentication routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := rt.Group("/api/v1")

	api.GET("/authentication/prove-ownership/{identityId}", r.rateLimit(r.handler.GetNonce))
	api.POST("/authentication/prove-ownership/{identityId}", r.rateLimit(r.handler.ProveOwnership))
}
