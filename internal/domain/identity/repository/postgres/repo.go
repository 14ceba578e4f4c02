package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/entities"
	iderrors "github.com/iotaledger/e-commerce-tools/internal/domain/identity/errors"
	"gorm.io/gorm"
)

// Repository implements deps.IdentityRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL identity repository
func NewRepository(db *gorm.DB) deps.IdentityRepository {
	return &Repository{db: db}
}

// Get retrieves an identity by id. Returns (nil, nil) when no record
// exists.
func (r *Repository) Get(ctx context.Context, identityID string) (*entities.Identity, error) {
	var model entities.IdentityModel
	if err := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return model.ToEntity(), nil
}

// Add persists a new identity record
func (r *Repository) Add(ctx context.Context, identity *entities.Identity) error {
	model := entities.FromEntity(identity)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return iderrors.ErrIdentityAlreadyExists
		}
		return fmt.Errorf("failed to add identity: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an identity record
func (r *Repository) Update(ctx context.Context, identity *entities.Identity) error {
	result := r.db.WithContext(ctx).
		Model(&entities.IdentityModel{}).
		Where("identity_id = ?", identity.IdentityID).
		Updates(map[string]interface{}{
			"username":               identity.Username,
			"public_key":             identity.PublicKey,
			"role":                   identity.Role,
			"claim":                  identity.Claim,
			"verifiable_credentials": identity.VerifiableCredentials,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update identity: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return iderrors.ErrIdentityNotFound
	}

	return nil
}

// Delete removes an identity record
func (r *Repository) Delete(ctx context.Context, identityID string) error {
	result := r.db.WithContext(ctx).
		Where("identity_id = ?", identityID).
		Delete(&entities.IdentityModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete identity: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return iderrors.ErrIdentityNotFound
	}

	return nil
}

// Search lists identities, optionally filtered by username prefix
func (r *Repository) Search(ctx context.Context, username string, limit, offset int) ([]entities.Identity, error) {
	query := r.db.WithContext(ctx).Model(&entities.IdentityModel{})
	if username != "" {
		query = query.Where("username LIKE ?", username+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var models []entities.IdentityModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search identities: %w", err)
	}

	identities := make([]entities.Identity, len(models))
	for i, model := range models {
		identities[i] = *model.ToEntity()
	}

	return identities, nil
}
