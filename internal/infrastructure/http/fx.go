package http

import (
	"context"

	"github.com/iotaledger/e-commerce-tools/config"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/http/server"
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Module provides HTTP server for fx DI
var Module = fx.Module("http",
	fx.Provide(
		NewServerFx,
		NewAuthMiddlewareFx,
		pkgerrors.NewMapper,
	),
)

// NewAuthMiddlewareFx creates the JWT middleware guarding mutating
// routes.
func NewAuthMiddlewareFx(authCfg *config.AuthConfig, logger zerolog.Logger) httputil.Middleware {
	return httputil.NewJWTMiddleware(authCfg.JWTSecret, logger)
}

// NewServerFx creates HTTP server with lifecycle hooks for fx DI
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(serviceCfg.Name, serviceCfg.Port, logger)

	srv.RegisterMetrics()
	srv.RegisterHealth()

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
