package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/entities"
	cherrors "github.com/iotaledger/e-commerce-tools/internal/domain/channelinfo/errors"
	"gorm.io/gorm"
)

// Repository implements deps.ChannelInfoRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL channel info repository
func NewRepository(db *gorm.DB) deps.ChannelInfoRepository {
	return &Repository{db: db}
}

// Get retrieves the channel info for an address. Returns (nil, nil)
// when no record exists.
func (r *Repository) Get(ctx context.Context, channelAddress string) (*entities.ChannelInfo, error) {
	var model entities.ChannelInfoModel
	if err := r.db.WithContext(ctx).
		Where("channel_address = ?", channelAddress).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get channel info: %w", err)
	}

	return model.ToEntity(), nil
}

// Add persists a new channel info record
func (r *Repository) Add(ctx context.Context, info *entities.ChannelInfo) error {
	model := entities.FromEntity(info)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return cherrors.ErrChannelAlreadyExists
		}
		return fmt.Errorf("failed to add channel info: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a channel info record
func (r *Repository) Update(ctx context.Context, info *entities.ChannelInfo) error {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelInfoModel{}).
		Where("channel_address = ?", info.ChannelAddress).
		Updates(map[string]interface{}{
			"name":           info.Name,
			"description":    info.Description,
			"topics":         info.Topics,
			"latest_message": info.LatestMessage,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update channel info: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return cherrors.ErrChannelNotFound
	}

	return nil
}

// Delete removes the channel info record for an address
func (r *Repository) Delete(ctx context.Context, channelAddress string) error {
	result := r.db.WithContext(ctx).
		Where("channel_address = ?", channelAddress).
		Delete(&entities.ChannelInfoModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete channel info: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return cherrors.ErrChannelNotFound
	}

	return nil
}

// Search lists channels, optionally filtered by author
func (r *Repository) Search(ctx context.Context, authorID string, limit, offset int) ([]entities.ChannelInfo, error) {
	query := r.db.WithContext(ctx).Model(&entities.ChannelInfoModel{})
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []entities.ChannelInfoModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search channel info: %w", err)
	}

	channels := make([]entities.ChannelInfo, len(models))
	for i, model := range models {
		channels[i] = *model.ToEntity()
	}

	return channels, nil
}

// AddSubscriberID appends an identity to the subscriber list if it is
// not already present.
func (r *Repository) AddSubscriberID(ctx context.Context, channelAddress, subscriberID string) error {
	var model entities.ChannelInfoModel
	if err := r.db.WithContext(ctx).
		Where("channel_address = ?", channelAddress).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cherrors.ErrChannelNotFound
		}
		return fmt.Errorf("failed to get channel info: %w", err)
	}

	for _, id := range model.SubscriberIDs {
		if id == subscriberID {
			return nil
		}
	}
	model.SubscriberIDs = append(model.SubscriberIDs, subscriberID)

	if err := r.db.WithContext(ctx).
		Model(&model).
		Update("subscriber_ids", model.SubscriberIDs).Error; err != nil {
		return fmt.Errorf("failed to append subscriber: %w", err)
	}

	return nil
}
