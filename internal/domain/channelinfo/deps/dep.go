package deps

import (
	"context"

	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
)

// ChannelInfoRepository defines the channel info storage contract.
// Get returns (nil, nil) when no record exists.
type ChannelInfoRepository interface {
	Get(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error)
	Add(ctx context.Context, info *entities.ChannelInfo) error
	Update(ctx context.Context, info *entities.ChannelInfo) error
	Delete(ctx context.Context, channelAddress string) error
	Search(ctx context.Context, authorID string, limit, offset int) ([]entities.ChannelInfo, error)
	AddSubscriberID(ctx context.Context, channelAddress, subscriberID string) error
}

// EventPublisher notifies downstream consumers about channel changes.
// Publish failures must not fail the request.
type EventPublisher interface {
	NotifyChannelChanged(ctx context.Context, eventType string, info *entities.ChannelInfo) error
}

// ChannelInfoService is the channel info service consumed by the HTTP
// delivery layer and by the subscription flow.
type ChannelInfoService interface {
	GetChannelInfo(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error)
	AddChannelInfo(ctx context.Context, info *entities.ChannelInfo) error
	UpdateChannelInfo(ctx context.Context, info *entities.ChannelInfo, actingIdentityID string) error
	DeleteChannelInfo(ctx context.Context, channelAddress, actingIdentityID string) error
	SearchChannelInfo(ctx context.Context, authorID string, limit, offset int) ([]entities.ChannelInfo, error)
	GetAuthorID(ctx context.Context, channelAddress string) (string, error)
	AddSubscriberID(ctx context.Context, channelAddress, identityID string) error
}
