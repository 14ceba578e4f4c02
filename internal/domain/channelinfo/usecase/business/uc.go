package business

import (
	"context"
	"errors"

	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
	cherrors "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// Event types published on channel lifecycle changes
const (
	EventChannelCreated = "channel.created"
	EventChannelUpdated = "channel.updated"
	EventChannelDeleted = "channel.deleted"
)

// UseCase implements channel info business logic. It also backs the
// author lookup and subscriber-list append used by the subscription
// flow.
type UseCase struct {
	channelRepo deps.ChannelInfoRepository
	events      deps.EventPublisher
	logger      zerolog.Logger
	metrics     *metrics.Metrics
}

// NewUseCase creates a new channel info use case
func NewUseCase(
	channelRepo deps.ChannelInfoRepository,
	events deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		channelRepo: channelRepo,
		events:      events,
		logger:      logger,
		metrics:     m,
	}
}

// GetChannelInfo returns the channel info for an address, or (nil, nil)
// when none exists.
func (u *UseCase) GetChannelInfo(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error) {
	if channelAddress == "" {
		return nil, cherrors.ErrMissingChannelAddress
	}
	return u.channelRepo.Get(ctx, channelAddress)
}

// AddChannelInfo registers a channel. The subscriber list starts with
// the author.
func (u *UseCase) AddChannelInfo(ctx context.Context, info *entities.ChannelInfo) error {
	if info == nil || info.ChannelAddress == "" {
		return cherrors.ErrMissingChannelAddress
	}
	if info.AuthorID == "" {
		return cherrors.ErrMissingAuthor
	}

	if !info.HasSubscriber(info.AuthorID) {
		info.SubscriberIDs = append(info.SubscriberIDs, info.AuthorID)
	}

	if err := u.channelRepo.Add(ctx, info); err != nil {
		if errors.Is(err, cherrors.ErrChannelAlreadyExists) {
			return err
		}
		u.logger.Error().Err(err).
			Str("channel_address", info.ChannelAddress).
			Msg("Failed to add channel info")
		return err
	}

	u.metrics.ChannelsCreatedTotal.Inc()
	u.notify(ctx, EventChannelCreated, info)

	u.logger.Info().
		Str("channel_address", info.ChannelAddress).
		Str("author_id", info.AuthorID).
		Msg("Channel registered")

	return nil
}

// UpdateChannelInfo replaces the mutable channel metadata. Only the
// author may update.
func (u *UseCase) UpdateChannelInfo(ctx context.Context, info *entities.ChannelInfo, actingIdentityID string) error {
	if info == nil || info.ChannelAddress == "" {
		return cherrors.ErrMissingChannelAddress
	}

	existing, err := u.channelRepo.Get(ctx, info.ChannelAddress)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", info.ChannelAddress).
			Msg("Failed to get channel info")
		return err
	}
	if existing == nil {
		return cherrors.ErrChannelNotFound
	}
	if existing.AuthorID != actingIdentityID {
		return cherrors.ErrChannelNotAuthorized
	}

	if err := u.channelRepo.Update(ctx, info); err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", info.ChannelAddress).
			Msg("Failed to update channel info")
		return err
	}

	updated := *existing
	updated.Name = info.Name
	updated.Description = info.Description
	updated.Topics = info.Topics
	updated.LatestMessage = info.LatestMessage
	u.notify(ctx, EventChannelUpdated, &updated)

	u.logger.Info().
		Str("channel_address", info.ChannelAddress).
		Msg("Channel info updated")

	return nil
}

// DeleteChannelInfo removes a channel registration. Only the author may
// delete. Subscription records of the channel are left untouched.
func (u *UseCase) DeleteChannelInfo(ctx context.Context, channelAddress, actingIdentityID string) error {
	if channelAddress == "" {
		return cherrors.ErrMissingChannelAddress
	}

	existing, err := u.channelRepo.Get(ctx, channelAddress)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Msg("Failed to get channel info")
		return err
	}
	if existing == nil {
		return cherrors.ErrChannelNotFound
	}
	if existing.AuthorID != actingIdentityID {
		return cherrors.ErrChannelNotAuthorized
	}

	if err := u.channelRepo.Delete(ctx, channelAddress); err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Msg("Failed to delete channel info")
		return err
	}

	u.notify(ctx, EventChannelDeleted, existing)

	u.logger.Info().
		Str("channel_address", channelAddress).
		Msg("Channel info deleted")

	return nil
}

// SearchChannelInfo lists channels, optionally filtered by author
func (u *UseCase) SearchChannelInfo(ctx context.Context, authorID string, limit, offset int) ([]entities.ChannelInfo, error) {
	return u.channelRepo.Search(ctx, authorID, limit, offset)
}

// GetAuthorID resolves the author of a channel. Used by the
// subscription authorization predicate.
func (u *UseCase) GetAuthorID(ctx context.Context, channelAddress string) (string, error) {
	info, err := u.channelRepo.Get(ctx, channelAddress)
	if err != nil {
		return "", err
	}
	if info == nil {
		return "", cherrors.ErrChannelNotFound
	}
	return info.AuthorID, nil
}

// AddSubscriberID appends an identity to the advisory subscriber list.
// Idempotent.
func (u *UseCase) AddSubscriberID(ctx context.Context, channelAddress, identityID string) error {
	return u.channelRepo.AddSubscriberID(ctx, channelAddress, identityID)
}

// notify publishes a lifecycle event. Publish failures are logged and
// never fail the operation.
func (u *UseCase) notify(ctx context.Context, eventType string, info *entities.ChannelInfo) {
	if err := u.events.NotifyChannelChanged(ctx, eventType, info); err != nil {
		u.logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("channel_address", info.ChannelAddress).
			Msg("Failed to publish channel event")
	}
}
