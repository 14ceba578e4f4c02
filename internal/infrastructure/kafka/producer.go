package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// Producer publishes domain events to Kafka
type Producer struct {
	producer sarama.SyncProducer
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewProducer creates a sarama SyncProducer with retry/backoff config
func NewProducer(brokers []string, logger zerolog.Logger, m *metrics.Metrics) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 500 * time.Millisecond
	config.Producer.Timeout = 10 * time.Second
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create Kafka SyncProducer")
		return nil, err
	}

	logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka SyncProducer initialized")

	return &Producer{
		producer: producer,
		logger:   logger,
		metrics:  m,
	}, nil
}

// NewProducerFromClient wraps an existing SyncProducer (used in tests)
func NewProducerFromClient(producer sarama.SyncProducer, logger zerolog.Logger, m *metrics.Metrics) *Producer {
	return &Producer{
		producer: producer,
		logger:   logger,
		metrics:  m,
	}
}

// Close closes the underlying producer
func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}

	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("failed to close Kafka producer")
		return err
	}

	p.logger.Info().Msg("Kafka producer closed")
	return nil
}

// SendToTopic sends any event to a specific topic, keyed for partitioning
func (p *Producer) SendToTopic(ctx context.Context, topic string, key string, event any) error {
	bytes, err := json.Marshal(event)
	if err != nil {
		p.metrics.RecordKafkaError("marshal")
		p.logger.Error().
			Err(err).
			Str("topic", topic).
			Msg("failed to marshal event")
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(bytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	latency := time.Since(start)

	if err != nil {
		p.metrics.RecordKafkaError("send")
		p.logger.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Dur("latency", latency).
			Msg("failed to send event to kafka")
		return err
	}

	p.metrics.KafkaMessagesProduced.Inc()

	p.logger.Debug().
		Str("topic", topic).
		Str("key", key).
		Int32("partition", partition).
		Int64("offset", offset).
		Dur("latency", latency).
		Msg("event sent to kafka")

	return nil
}
