package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// Router registers identity registry HTTP routes
type Router struct {
	handler *IdentityHandler
	auth    httputil.Middleware
	logger  zerolog.Logger
}

// NewRouter creates a new identity router
func NewRouter(handler *IdentityHandler, auth httputil.Middleware, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes registers identity routes on the router. Registration
// is public, everything else requires an authenticated caller.
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := rt.Group("/api/v1")

	api.POST("/identities", r.handler.AddIdentity)
	api.GET("/identities/search", r.auth(r.handler.SearchIdentities))
	api.GET("/identities/{identityId}", r.auth(r.handler.GetIdentity))
	api.PUT("/identities/{identityId}", r.auth(r.handler.UpdateIdentity))
	api.DELETE("/identities/{identityId}", r.auth(r.handler.DeleteIdentity))
}
