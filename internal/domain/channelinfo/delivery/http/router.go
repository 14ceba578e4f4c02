package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// Router registers channel info HTTP routes
type Router struct {
	handler *ChannelInfoHandler
	auth    httputil.Middleware
	logger  zerolog.Logger
}

// NewRouter creates a new channel info router
func NewRouter(handler *ChannelInfoHandler, auth httputil.Middleware, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		auth:    auth,
		logger:  logger,
	}
}

// RegisterRoutes registers channel info routes on the router. Reads are
// public, mutations require an authenticated caller.
func (r *Router) RegisterRoutes(rt *router.Router) {
	api := rt.Group("/api/v1")

	api.GET("/channel-info/search", r.handler.SearchChannelInfo)
	api.GET("/channel-info/channel/{channelAddress}", r.handler.GetChannelInfo)
	api.POST("/channel-info/channel/{channelAddress}", r.auth(r.handler.AddChannelInfo))
	api.PUT("/channel-info/channel/{channelAddress}", r.auth(r.handler.UpdateChannelInfo))
	api.DELETE("/channel-info/channel/{channelAddress}", r.auth(r.handler.DeleteChannelInfo))
}
