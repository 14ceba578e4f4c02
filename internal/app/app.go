package app

import (
	"github.com/iotaledger/e-commerce-tools/config"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure"
	"go.uber.org/fx"
)

// CreateApp creates the fx application options
func CreateApp() fx.Option {
	return fx.Options(
		fx.Provide(config.Out),

		infrastructure.Module,

		// Domain modules
		identity.Module,
		auth.Module,
		channelinfo.Module,
		subscription.Module,
	)
}
