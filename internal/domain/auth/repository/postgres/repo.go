package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements deps.NonceRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL nonce repository
func NewRepository(db *gorm.DB) deps.NonceRepository {
	return &Repository{db: db}
}

// Upsert stores a nonce for the identity, replacing any pending one
func (r *Repository) Upsert(ctx context.Context, identityID, nonce string) error {
	model := &entities.NonceModel{
		IdentityID: identityID,
		Nonce:      nonce,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "identity_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"nonce", "updated_at"}),
		}).
		Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to store nonce: %w", result.Error)
	}

	return nil
}

// Get retrieves the pending nonce for an identity. Returns (nil, nil)
// when no challenge is pending.
func (r *Repository) Get(ctx context.Context, identityID string) (*entities.Nonce, error) {
	var model entities.NonceModel
	if err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	return model.ToEntity(), nil
}

// Delete removes the pending nonce for an identity
func (r *Repository) Delete(ctx context.Context, identityID string) error {
	if err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Delete(&entities.NonceModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete nonce: %w", err)
	}

	return nil
}
