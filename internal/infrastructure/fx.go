package infrastructure

import (
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/database"
	httpfx "github.com/iotaledger/e-commerce-tools/internal/infrastructure/http"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/kafka"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/logger"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/streams"
	"go.uber.org/fx"
)

// Module aggregates all infrastructure modules
var Module = fx.Module("infrastructure",
	logger.Module,
	database.Module,
	metrics.Module,
	streams.Module,
	kafka.Module,
	httpfx.Module,
)
