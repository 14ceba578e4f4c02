package subscription

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	subhttp "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/delivery/http"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/repository/postgres"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/usecase/business"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/http/server"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Module provides subscription domain components for fx DI
var Module = fx.Module("subscription",
	fx.Provide(
		postgres.NewRepository,
		NewUseCaseFx,
		subhttp.NewSubscriptionHandler,
		subhttp.NewRouter,
	),
	fx.Invoke(RegisterRoutes),
)

// NewUseCaseFx creates the subscription use case for fx DI
func NewUseCaseFx(
	repo deps.SubscriptionRepository,
	streams deps.StreamsClient,
	channelInfo deps.ChannelInfoProvider,
	events deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) deps.SubscriptionService {
	return business.NewUseCase(repo, streams, channelInfo, events, logger, m)
}

// RegisterRoutes registers subscription HTTP routes on the server
func RegisterRoutes(srv *server.Server, router *subhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
