package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/iotaledger/e-commerce-tools/config"
	chdeps "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/deps"
	subdeps "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
)

// Module provides the Kafka producer and event publishers for fx DI
var Module = fx.Module("kafka",
	fx.Provide(
		NewProducerFx,
		NewSubscriptionEventsFx,
		NewChannelEventsFx,
	),
)

// NewProducerFx creates the Kafka producer with lifecycle hooks for fx DI
func NewProducerFx(
	lc fx.Lifecycle,
	kafkaCfg *config.KafkaConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) (*Producer, error) {
	producer, err := NewProducer(kafkaCfg.Brokers, logger, m)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}

// NewSubscriptionEventsFx creates the subscription event publisher for fx DI
func NewSubscriptionEventsFx(producer *Producer, kafkaCfg *config.KafkaConfig) subdeps.EventPublisher {
	return NewSubscriptionEvents(producer, kafkaCfg.SubscriptionTopic)
}

// NewChannelEventsFx creates the channel event publisher for fx DI
func NewChannelEventsFx(producer *Producer, kafkaCfg *config.KafkaConfig) chdeps.EventPublisher {
	return NewChannelEvents(producer, kafkaCfg.ChannelTopic)
}
