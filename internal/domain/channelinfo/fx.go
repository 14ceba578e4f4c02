package channelinfo

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	chhttp "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/delivery/http"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/repository/postgres"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/usecase/business"
	subdeps "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/http/server"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Module provides channel info domain components for fx DI
var Module = fx.Module("channelinfo",
	fx.Provide(
		postgres.NewRepository,
		NewUseCaseFx,
		chhttp.NewChannelInfoHandler,
		chhttp.NewRouter,
		// The channel info service backs the subscription authorization
		// predicate and the subscriber-list projection
		func(svc deps.ChannelInfoService) subdeps.ChannelInfoProvider {
			return svc
		},
	),
	fx.Invoke(RegisterRoutes),
)

// NewUseCaseFx creates the channel info use case for fx DI
func NewUseCaseFx(
	repo deps.ChannelInfoRepository,
	events deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) deps.ChannelInfoService {
	return business.NewUseCase(repo, events, logger, m)
}

// RegisterRoutes registers channel info HTTP routes on the server
func RegisterRoutes(srv *server.Server, router *chhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
