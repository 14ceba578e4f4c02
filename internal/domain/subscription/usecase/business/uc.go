package business

import (
	"context"
	"errors"
	"time"

	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/dto"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
	suberrors "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// Event types published on subscription lifecycle changes
const (
	EventSubscriptionRequested = "subscription.requested"
	EventSubscriptionAdded     = "subscription.added"
	EventSubscriptionUpdated   = "subscription.updated"
	EventSubscriptionDeleted   = "subscription.deleted"
)

// UseCase implements subscription business logic
type UseCase struct {
	subscriptionRepo deps.SubscriptionRepository
	streams          deps.StreamsClient
	channelInfo      deps.ChannelInfoProvider
	events           deps.EventPublisher
	logger           zerolog.Logger
	metrics          *metrics.Metrics
}

// NewUseCase creates a new subscription use case
func NewUseCase(
	subscriptionRepo deps.SubscriptionRepository,
	streams deps.StreamsClient,
	channelInfo deps.ChannelInfoProvider,
	events deps.EventPublisher,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		subscriptionRepo: subscriptionRepo,
		streams:          streams,
		channelInfo:      channelInfo,
		events:           events,
		logger:           logger,
		metrics:          m,
	}
}

// RequestSubscription mints a subscription on the ledger and records it.
// The flow is not transactional: the ledger mint cannot be undone, so a
// failure after minting leaves an orphaned handle on the ledger and no
// local record. Duplicate races are caught by the storage unique
// indexes.
func (u *UseCase) RequestSubscription(ctx context.Context, channelAddress, identityID string, req *dto.RequestSubscriptionBody) (*dto.RequestSubscriptionResponse, error) {
	start := time.Now()

	if channelAddress == "" || identityID == "" {
		return nil, suberrors.ErrMissingChannelOrIdentity
	}
	if req == nil {
		req = &dto.RequestSubscriptionBody{}
	}

	// Check if the identity already holds a subscription for the channel
	existing, err := u.subscriptionRepo.GetByIdentity(ctx, channelAddress, identityID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to check existing subscription")
		u.metrics.RecordSubscriptionRequestError("repository_error")
		return nil, err
	}
	if existing != nil {
		u.logger.Debug().
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Subscription already requested")
		u.metrics.RecordSubscriptionRequestError("already_requested")
		return nil, suberrors.ErrAlreadyRequested
	}

	// Mint the subscription on the ledger
	handle, err := u.streams.RequestSubscription(ctx, channelAddress, req.Seed, req.PresharedKey)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to request subscription on the ledger")
		u.metrics.RecordSubscriptionRequestError("ledger_error")
		return nil, suberrors.ErrRequestFailed
	}

	// Public-key subscriptions must not reuse a key already bound to the
	// channel. The minted handle cannot be revoked and stays orphaned on
	// the ledger.
	if handle.PskID == "" && handle.PublicKey != "" {
		inUse, err := u.subscriptionRepo.GetByPublicKey(ctx, channelAddress, handle.PublicKey)
		if err != nil {
			u.logger.Error().Err(err).
				Str("channel_address", channelAddress).
				Str("identity_id", identityID).
				Msg("Failed to check public key usage")
			u.metrics.RecordSubscriptionRequestError("repository_error")
			return nil, err
		}
		if inUse != nil {
			u.logger.Warn().
				Str("channel_address", channelAddress).
				Str("identity_id", identityID).
				Str("subscription_link", handle.SubscriptionLink).
				Msg("Public key already used, minted subscription is orphaned")
			u.metrics.RecordSubscriptionRequestError("public_key_in_use")
			return nil, suberrors.ErrPublicKeyInUse
		}
	}

	// Export the opaque handle state for persistence
	state, err := u.streams.ExportState(ctx, handle)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to export subscription state")
		u.metrics.RecordSubscriptionRequestError("ledger_error")
		return nil, suberrors.ErrRequestFailed
	}

	sub := buildSubscription(channelAddress, identityID, req, handle, state)

	if err := u.subscriptionRepo.Add(ctx, sub); err != nil {
		if errors.Is(err, suberrors.ErrAlreadyAdded) {
			// Lost the race against a concurrent request for the same pair
			u.metrics.RecordSubscriptionRequestError("already_requested")
			return nil, suberrors.ErrAlreadyRequested
		}
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to save subscription")
		u.metrics.RecordSubscriptionRequestError("repository_save_failed")
		return nil, err
	}

	// The subscriber list on the channel info is an advisory projection;
	// a failed append is reconciled by a later write, not by failing the
	// request.
	if err := u.channelInfo.AddSubscriberID(ctx, channelAddress, identityID); err != nil {
		u.logger.Warn().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to append subscriber to channel info")
	}

	u.notify(ctx, EventSubscriptionRequested, sub)

	u.metrics.RecordSubscriptionRequest(time.Since(start).Seconds())

	u.logger.Info().
		Str("channel_address", channelAddress).
		Str("identity_id", identityID).
		Bool("preshared_key", sub.UsesPresharedKey()).
		Msg("Subscription requested")

	return &dto.RequestSubscriptionResponse{
		Seed:             handle.Seed,
		SubscriptionLink: handle.SubscriptionLink,
	}, nil
}

// GetSubscriptions lists the subscriptions of a channel. A nil
// isAuthorized means no filtering.
func (u *UseCase) GetSubscriptions(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error) {
	if channelAddress == "" {
		return nil, suberrors.ErrMissingChannelOrIdentity
	}
	return u.subscriptionRepo.GetByChannel(ctx, channelAddress, isAuthorized)
}

// GetSubscription returns the subscription of an identity on a channel,
// or (nil, nil) when none exists.
func (u *UseCase) GetSubscription(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
	if channelAddress == "" || identityID == "" {
		return nil, suberrors.ErrMissingChannelOrIdentity
	}
	return u.subscriptionRepo.GetByIdentity(ctx, channelAddress, identityID)
}

// GetSubscriptionByPublicKey returns the subscription bound to a public
// key on a channel, or (nil, nil) when none exists.
func (u *UseCase) GetSubscriptionByPublicKey(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error) {
	if channelAddress == "" || publicKey == "" {
		return nil, suberrors.ErrMissingChannelOrIdentity
	}
	return u.subscriptionRepo.GetByPublicKey(ctx, channelAddress, publicKey)
}

// AddSubscription records an externally created subscription without
// touching the ledger. Used by channel authors to register subscribers
// managed elsewhere.
func (u *UseCase) AddSubscription(ctx context.Context, sub *entities.Subscription) error {
	if sub == nil || sub.ChannelAddress == "" || sub.IdentityID == "" || sub.PublicKey == "" {
		return suberrors.ErrMissingPublicKey
	}

	existing, err := u.subscriptionRepo.GetByIdentity(ctx, sub.ChannelAddress, sub.IdentityID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", sub.ChannelAddress).
			Str("identity_id", sub.IdentityID).
			Msg("Failed to check existing subscription")
		return err
	}
	if existing != nil {
		return suberrors.ErrAlreadyAdded
	}

	if sub.Type == "" {
		sub.Type = entities.SubscriptionTypeSubscriber
	}

	if err := u.subscriptionRepo.Add(ctx, sub); err != nil {
		if errors.Is(err, suberrors.ErrAlreadyAdded) {
			return err
		}
		u.logger.Error().Err(err).
			Str("channel_address", sub.ChannelAddress).
			Str("identity_id", sub.IdentityID).
			Msg("Failed to add subscription")
		return err
	}

	u.notify(ctx, EventSubscriptionAdded, sub)

	u.logger.Info().
		Str("channel_address", sub.ChannelAddress).
		Str("identity_id", sub.IdentityID).
		Msg("Subscription added")

	return nil
}

// UpdateSubscription applies a merge patch to a stored subscription.
// Only the channel author or the subscription owner may update.
func (u *UseCase) UpdateSubscription(ctx context.Context, channelAddress, identityID, actingIdentityID string, patch *dto.SubscriptionPatch) error {
	if channelAddress == "" || identityID == "" {
		return suberrors.ErrMissingChannelOrIdentity
	}

	authorID, err := u.channelInfo.GetAuthorID(ctx, channelAddress)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Msg("Failed to resolve channel author")
		return err
	}
	if !canMutate(authorID, actingIdentityID, identityID) {
		return suberrors.ErrUpdateNotAuthorized
	}

	existing, err := u.subscriptionRepo.GetByIdentity(ctx, channelAddress, identityID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to get subscription")
		return err
	}
	if existing == nil {
		return suberrors.ErrSubscriptionNotFound
	}

	if patch.IsEmpty() {
		return nil
	}

	if err := u.subscriptionRepo.Update(ctx, channelAddress, identityID, patch); err != nil {
		if errors.Is(err, suberrors.ErrSubscriptionNotFound) {
			return err
		}
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to update subscription")
		return err
	}

	updated := applyPatch(existing, patch)
	u.notify(ctx, EventSubscriptionUpdated, updated)

	u.metrics.SubscriptionUpdatesTotal.Inc()

	u.logger.Info().
		Str("channel_address", channelAddress).
		Str("identity_id", identityID).
		Str("acting_identity_id", actingIdentityID).
		Msg("Subscription updated")

	return nil
}

// DeleteSubscription removes the stored subscription record. Only the
// channel author or the subscription owner may delete. The channel
// subscriber list and the ledger handle are left untouched; the handle
// cannot be revoked once minted.
func (u *UseCase) DeleteSubscription(ctx context.Context, channelAddress, identityID, actingIdentityID string) error {
	if channelAddress == "" || identityID == "" {
		return suberrors.ErrMissingChannelOrIdentity
	}

	authorID, err := u.channelInfo.GetAuthorID(ctx, channelAddress)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Msg("Failed to resolve channel author")
		return err
	}
	if !canMutate(authorID, actingIdentityID, identityID) {
		return suberrors.ErrDeleteNotAuthorized
	}

	existing, err := u.subscriptionRepo.GetByIdentity(ctx, channelAddress, identityID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to get subscription")
		return err
	}
	if existing == nil {
		return suberrors.ErrSubscriptionNotFound
	}

	if err := u.subscriptionRepo.Delete(ctx, channelAddress, identityID); err != nil {
		if errors.Is(err, suberrors.ErrSubscriptionNotFound) {
			return err
		}
		u.logger.Error().Err(err).
			Str("channel_address", channelAddress).
			Str("identity_id", identityID).
			Msg("Failed to delete subscription")
		return err
	}

	u.notify(ctx, EventSubscriptionDeleted, existing)

	u.metrics.SubscriptionDeletesTotal.Inc()

	u.logger.Info().
		Str("channel_address", channelAddress).
		Str("identity_id", identityID).
		Str("acting_identity_id", actingIdentityID).
		Msg("Subscription deleted")

	return nil
}

// notify publishes a lifecycle event. Publish failures are logged and
// never fail the operation.
func (u *UseCase) notify(ctx context.Context, eventType string, sub *entities.Subscription) {
	if err := u.events.NotifySubscriptionChanged(ctx, eventType, sub); err != nil {
		u.logger.Warn().Err(err).
			Str("event_type", eventType).
			Str("channel_address", sub.ChannelAddress).
			Str("identity_id", sub.IdentityID).
			Msg("Failed to publish subscription event")
	}
}

// buildSubscription assembles the record persisted for a requested
// subscription. Preshared-key subscriptions are trusted immediately:
// audit rights, authorized, keyload link pointing at the channel
// announcement, no public key.
func buildSubscription(channelAddress, identityID string, req *dto.RequestSubscriptionBody, handle *deps.SubscriptionHandle, state string) *entities.Subscription {
	sub := &entities.Subscription{
		ChannelAddress:   channelAddress,
		IdentityID:       identityID,
		Type:             entities.SubscriptionTypeSubscriber,
		SubscriptionLink: handle.SubscriptionLink,
		State:            state,
	}

	if handle.PskID != "" {
		sub.AccessRights = entities.AccessRightsAudit
		sub.IsAuthorized = true
		sub.KeyloadLink = channelAddress
		sub.PskID = handle.PskID
		return sub
	}

	sub.AccessRights = req.AccessRights
	if sub.AccessRights == "" {
		sub.AccessRights = entities.AccessRightsReadAndWrite
	}
	sub.PublicKey = handle.PublicKey
	return sub
}

// applyPatch returns a copy of the subscription with the patch applied,
// used for the change event payload.
func applyPatch(sub *entities.Subscription, patch *dto.SubscriptionPatch) *entities.Subscription {
	updated := *sub
	if patch.AccessRights != nil {
		updated.AccessRights = *patch.AccessRights
	}
	if patch.IsAuthorized != nil {
		updated.IsAuthorized = *patch.IsAuthorized
	}
	if patch.KeyloadLink != nil {
		updated.KeyloadLink = *patch.KeyloadLink
	}
	if patch.SubscriptionLink != nil {
		updated.SubscriptionLink = *patch.SubscriptionLink
	}
	if patch.State != nil {
		updated.State = *patch.State
	}
	return &updated
}
