package kafka

import (
	"context"
	"time"

	chentities "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
)

// subscriptionEvent is the envelope published on subscription changes
type subscriptionEvent struct {
	Type         string                 `json:"type"`
	Timestamp    time.Time              `json:"timestamp"`
	Subscription *entities.Subscription `json:"subscription"`
}

// SubscriptionEvents publishes subscription lifecycle events, keyed by
// channel address so per-channel ordering is preserved.
type SubscriptionEvents struct {
	producer *Producer
	topic    string
}

// NewSubscriptionEvents creates a subscription event publisher
func NewSubscriptionEvents(producer *Producer, topic string) *SubscriptionEvents {
	return &SubscriptionEvents{
		producer: producer,
		topic:    topic,
	}
}

// NotifySubscriptionChanged publishes a subscription lifecycle event.
// The exported ledger state grants restore capability and never leaves
// the service.
func (e *SubscriptionEvents) NotifySubscriptionChanged(ctx context.Context, eventType string, sub *entities.Subscription) error {
	payload := *sub
	payload.State = ""

	return e.producer.SendToTopic(ctx, e.topic, sub.ChannelAddress, subscriptionEvent{
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		Subscription: &payload,
	})
}

// channelEvent is the envelope published on channel info changes
type channelEvent struct {
	Type      string                  `json:"type"`
	Timestamp time.Time               `json:"timestamp"`
	Channel   *chentities.ChannelInfo `json:"channel"`
}

// ChannelEvents publishes channel info lifecycle events
type ChannelEvents struct {
	producer *Producer
	topic    string
}

// NewChannelEvents creates a channel event publisher
func NewChannelEvents(producer *Producer, topic string) *ChannelEvents {
	return &ChannelEvents{
		producer: producer,
		topic:    topic,
	}
}

// NotifyChannelChanged publishes a channel info lifecycle event
func (e *ChannelEvents) NotifyChannelChanged(ctx context.Context, eventType string, info *chentities.ChannelInfo) error {
	return e.producer.SendToTopic(ctx, e.topic, info.ChannelAddress, channelEvent{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Channel:   info,
	})
}
