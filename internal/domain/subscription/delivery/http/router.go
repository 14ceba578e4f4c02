package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// Router registers subscription HTTP routes
type Router struct {
	handler *SubscriptionHandler
	auth    httputil.Middleware
	logger  zerolog.Logger
}

// NewRouter creates a new subscription router
func NewRouter(handler *SubscriptionHandler, auth httputil.Middleware, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes registers subscription routes on the router. All
// routes require an authenticated caller.
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := rt.Group("/api/v1")

	api.POST("/subscriptions/request/{channelAddress}", r.auth(r.handler.RequestSubscription))
	api.GET("/subscriptions/{channelAddress}", r.auth(r.handler.GetSubscriptions))
	api.GET("/subscriptions/{channelAddress}/{identityId}", r.auth(r.handler.GetSubscription))
	api.POST("/subscriptions/{channelAddress}/{identityId}", r.auth(r.handler.AddSubscription))
	api.PUT("/subscriptions/{channelAddress}/{identityId}", r.auth(r.handler.UpdateSubscription))
	api.DELETE("/subscriptions/{channelAddress}/{identityId}", r.auth(r.handler.DeleteSubscription))
}
