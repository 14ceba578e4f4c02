package identity

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	idhttp "github.com/iotaledger/e-commerce-tools/internal/domain/identity/delivery/http"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/repository/postgres"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/usecase/business"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/http/server"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Module provides identity domain components for fx DI
var Module = fx.Module("identity",
	fx.Provide(
		postgres.NewRepository,
		NewUseCaseFx,
		idhttp.NewIdentityHandler,
		idhttp.NewRouter,
	),
	fx.Invoke(RegisterRoutes),
)

// NewUseCaseFx creates the identity use case for fx DI
func NewUseCaseFx(
	repo deps.IdentityRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) deps.IdentityService {
	return business.NewUseCase(repo, logger, m)
}

// RegisterRoutes registers identity HTTP routes on the server
func RegisterRoutes(srv *server.Server, router *idhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
