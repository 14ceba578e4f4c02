package business

import (
	"context"
	"errors"

	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/deps"
	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/entities"
	iderrors "github.com/iotaledger/e-commerce-tools/internal/domain/identity/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/rs/zerolog"
)

// UseCase implements the identity registry business logic
type UseCase struct {
	identityRepo deps.IdentityRepository
	logger       zerolog.Logger
	metrics      *metrics.Metrics
}

// NewUseCase creates a new identity use case
func NewUseCase(
	identityRepo deps.IdentityRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		identityRepo: identityRepo,
		logger:       logger,
		metrics:      m,
	}
}

// GetIdentity returns the identity record for an id, or (nil, nil) when
// none exists.
func (u *UseCase) GetIdentity(ctx context.Context, identityID string) (*entities.Identity, error) {
	if identityID == "" {
		return nil, iderrors.ErrMissingIdentityID
	}
	return u.identityRepo.Get(ctx, identityID)
}

// AddIdentity registers an identity. The DID document is assumed to be
// published on the identity ledger already; only the registry entry is
// created here.
func (u *UseCase) AddIdentity(ctx context.Context, identity *entities.Identity) error {
	if identity == nil || identity.IdentityID == "" {
		return iderrors.ErrMissingIdentityID
	}
	if identity.PublicKey == "" {
		return iderrors.ErrMissingPublicKey
	}

	if err := u.identityRepo.Add(ctx, identity); err != nil {
		if errors.Is(err, iderrors.ErrIdentityAlreadyExists) {
			return err
		}
		u.logger.Error().Err(err).
			Str("identity_id", identity.IdentityID).
			Msg("Failed to add identity")
		return err
	}

	u.metrics.IdentitiesCreatedTotal.Inc()

	u.logger.Info().
		Str("identity_id", identity.IdentityID).
		Str("username", identity.Username).
		Msg("Identity registered")

	return nil
}

// UpdateIdentity replaces the mutable fields of an identity. Only the
// identity itself may update.
func (u *UseCase) UpdateIdentity(ctx context.Context, identity *entities.Identity, actingIdentityID string) error {
	if identity == nil || identity.IdentityID == "" {
		return iderrors.ErrMissingIdentityID
	}
	if identity.IdentityID != actingIdentityID {
		return iderrors.ErrIdentityNotAuthorized
	}

	if err := u.identityRepo.Update(ctx, identity); err != nil {
		if errors.Is(err, iderrors.ErrIdentityNotFound) {
			return err
		}
		u.logger.Error().Err(err).
			Str("identity_id", identity.IdentityID).
			Msg("Failed to update identity")
		return err
	}

	u.logger.Info().
		Str("identity_id", identity.IdentityID).
		Msg("Identity updated")

	return nil
}

// DeleteIdentity removes an identity registration. Only the identity
// itself may delete. Subscriptions of the identity are left untouched.
func (u *UseCase) DeleteIdentity(ctx context.Context, identityID, actingIdentityID string) error {
	if identityID == "" {
		return iderrors.ErrMissingIdentityID
	}
	if identityID != actingIdentityID {
		return iderrors.ErrIdentityNotAuthorized
	}

	if err := u.identityRepo.Delete(ctx, identityID); err != nil {
		if errors.Is(err, iderrors.ErrIdentityNotFound) {
			return err
		}
		u.logger.Error().Err(err).
			Str("identity_id", identityID).
			Msg("Failed to delete identity")
		return err
	}

	u.logger.Info().
		Str("identity_id", identityID).
		Msg("Identity deleted")

	return nil
}

// SearchIdentities lists identities, optionally filtered by username
func (u *UseCase) SearchIdentities(ctx context.Context, username string, limit, offset int) ([]entities.Identity, error) {
	return u.identityRepo.Search(ctx, username, limit, offset)
}

// GetPublicKey resolves the registered public key of an identity. Used
// by the ownership proof.
func (u *UseCase) GetPublicKey(ctx context.Context, identityID string) (string, error) {
	identity, err := u.identityRepo.Get(ctx, identityID)
	if err != nil {
		return "", err
	}
	if identity == nil {
		return "", iderrors.ErrIdentityNotFound
	}
	return identity.PublicKey, nil
}
