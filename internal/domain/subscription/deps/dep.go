package deps

import (
	"context"

	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/dto"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
)

// SubscriptionRepository defines the subscription storage contract.
// Lookups return (nil, nil) when no record exists; Add fails with
// suberrors.ErrAlreadyAdded on a uniqueness violation.
type SubscriptionRepository interface {
	GetByIdentity(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error)
	GetByPublicKey(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error)
	GetByChannel(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error)
	Add(ctx context.Context, sub *entities.Subscription) error
	Update(ctx context.Context, channelAddress, identityID string, patch *dto.SubscriptionPatch) error
	Delete(ctx context.Context, channelAddress, identityID string) error
}

// SubscriptionHandle is the result of minting a subscription on the
// ledger. ID is an opaque gateway handle used for the state export.
type SubscriptionHandle struct {
	ID               string
	SubscriptionLink string
	PublicKey        string
	PskID            string
	Seed             string
}

// StreamsClient is the ledger-facing capability: mint a subscription
// handle and export its opaque state. Minting has no undo.
type StreamsClient interface {
	RequestSubscription(ctx context.Context, channelAddress, seed, presharedKey string) (*SubscriptionHandle, error)
	ExportState(ctx context.Context, handle *SubscriptionHandle) (string, error)
}

// ChannelInfoProvider exposes the channel metadata needed for
// authorization decisions and the advisory subscriber list.
type ChannelInfoProvider interface {
	GetAuthorID(ctx context.Context, channelAddress string) (string, error)
	AddSubscriberID(ctx context.Context, channelAddress, identityID string) error
}

// EventPublisher notifies downstream consumers about subscription
// lifecycle changes. Publish failures must not fail the request.
type EventPublisher interface {
	NotifySubscriptionChanged(ctx context.Context, eventType string, sub *entities.Subscription) error
}

// SubscriptionService is the reconciliation service consumed by the
// HTTP delivery layer.
type SubscriptionService interface {
	RequestSubscription(ctx context.Context, channelAddress, identityID string, req *dto.RequestSubscriptionBody) (*dto.RequestSubscriptionResponse, error)
	GetSubscriptions(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error)
	GetSubscription(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error)
	GetSubscriptionByPublicKey(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error)
	AddSubscription(ctx context.Context, sub *entities.Subscription) error
	UpdateSubscription(ctx context.Context, channelAddress, identityID, actingIdentityID string, patch *dto.SubscriptionPatch) error
	DeleteSubscription(ctx context.Context, channelAddress, identityID, actingIdentityID string) error
}
