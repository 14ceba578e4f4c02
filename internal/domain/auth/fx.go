package auth

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/iotaledger/e-commerce-tools/config"
	authhttp "github.com/iotaledger/e-commerce-tools/internal/domain/auth/delivery/http"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/repository/postgres"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/usecase/business"
	iddeps "github.com/iotaledger/e-commerce-tools/internal/domain/identity/deps"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/http/server"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Module provides authentication domain components for fx DI
var Module = fx.Module("auth",
	fx.Provide(
		postgres.NewRepository,
		NewUseCaseFx,
		authhttp.NewAuthHandler,
		authhttp.NewRouter,
		// The identity registry backs the public key lookup
		func(svc iddeps.IdentityService) deps.IdentityKeyProvider {
			return svc
		},
	),
	fx.Invoke(RegisterRoutes),
)

// NewUseCaseFx creates the authentication use case for fx DI
func NewUseCaseFx(
	nonceRepo deps.NonceRepository,
	keys deps.IdentityKeyProvider,
	authCfg *config.AuthConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) deps.AuthService {
	return business.NewUseCase(nonceRepo, keys, authCfg, logger, m)
}

// RegisterRoutes registers authentication HTTP routes on the server
func RegisterRoutes(srv *server.Server, router *authhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
