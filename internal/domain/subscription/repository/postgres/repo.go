package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/dto"
	"github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"
	suberrors "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/errors"
	"gorm.io/gorm"
)

// Repository implements deps.SubscriptionRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL subscription repository
func NewRepository(db *gorm.DB) deps.SubscriptionRepository {
	return &Repository{db: db}
}

// GetByIdentity retrieves the subscription for a channel/identity pair.
// Returns (nil, nil) when no record exists.
func (r *Repository) GetByIdentity(ctx context.Context, channelAddress, identityID string) (*entities.Subscription, error) {
	var model entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("channel_address = ? AND identity_id = ?", channelAddress, identityID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByPublicKey retrieves the subscription holding the given public key
// on the channel. Returns (nil, nil) when no record exists.
func (r *Repository) GetByPublicKey(ctx context.Context, channelAddress, publicKey string) (*entities.Subscription, error) {
	var model entities.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("channel_address = ? AND public_key = ?", channelAddress, publicKey).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription by public key: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByChannel retrieves all subscriptions of a channel, optionally
// filtered by authorization status.
func (r *Repository) GetByChannel(ctx context.Context, channelAddress string, isAuthorized *bool) ([]entities.Subscription, error) {
	query := r.db.WithContext(ctx).Where("channel_address = ?", channelAddress)
	if isAuthorized != nil {
		query = query.Where("is_authorized = ?", *isAuthorized)
	}

	var models []entities.SubscriptionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to get channel subscriptions: %w", err)
	}

	subscriptions := make([]entities.Subscription, len(models))
	for i, model := range models {
		subscriptions[i] = *model.ToEntity()
	}

	return subscriptions, nil
}

// Add persists a new subscription. Uniqueness violations on either the
// channel/identity pair or the channel/public-key pair surface as
// suberrors.ErrAlreadyAdded.
func (r *Repository) Add(ctx context.Context, sub *entities.Subscription) error {
	model := entities.FromEntity(sub)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return suberrors.ErrAlreadyAdded
		}
		return fmt.Errorf("failed to add subscription: %w", err)
	}

	return nil
}

// Update applies the merge patch to a stored subscription
func (r *Repository) Update(ctx context.Context, channelAddress, identityID string, patch *dto.SubscriptionPatch) error {
	updates := map[string]interface{}{}
	if patch.AccessRights != nil {
		updates["access_rights"] = string(*patch.AccessRights)
	}
	if patch.IsAuthorized != nil {
		updates["is_authorized"] = *patch.IsAuthorized
	}
	if patch.KeyloadLink != nil {
		updates["keyload_link"] = *patch.KeyloadLink
	}
	if patch.SubscriptionLink != nil {
		updates["subscription_link"] = *patch.SubscriptionLink
	}
	if patch.State != nil {
		updates["state"] = *patch.State
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).
		Model(&entities.SubscriptionModel{}).
		Where("channel_address = ? AND identity_id = ?", channelAddress, identityID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return suberrors.ErrSubscriptionNotFound
	}

	return nil
}

// Delete removes the subscription record for a channel/identity pair
func (r *Repository) Delete(ctx context.Context, channelAddress, identityID string) error {
	result := r.db.WithContext(ctx).
		Where("channel_address = ? AND identity_id = ?", channelAddress, identityID).
		Delete(&entities.SubscriptionModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete subscription: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return suberrors.ErrSubscriptionNotFound
	}

	return nil
}
