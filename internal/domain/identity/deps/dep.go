package deps

import (
	"context"

	"github.com/iotaledger/e-commerce-tools/internal/domain/identity/entities"
)

// IdentityRepository defines the identity storage contract. Get returns
// (nil, nil) when no record exists.
type IdentityRepository interface {
	Get(ctx context.Context, identityID string) (*entities.Identity, error)
	Add(ctx context.Context, identity *entities.Identity) error
	Update(ctx context.Context, identity *entities.Identity) error
	Delete(ctx context.Context, identityID string) error
	Search(ctx context.Context, username string, limit, offset int) ([]entities.Identity, error)
}

// IdentityService is the identity registry consumed by the HTTP
// delivery layer and by the authentication flow.
type IdentityService interface {
	GetIdentity(ctx context.Context, identityID string) (*entities.Identity, error)
	AddIdentity(ctx context.Context, identity *entities.Identity) error
	UpdateIdentity(ctx context.Context, identity *entities.Identity, actingIdentityID string) error
	DeleteIdentity(ctx context.Context, identityID, actingIdentityID string) error
	SearchIdentities(ctx context.Context, username string, limit, offset int) ([]entities.Identity, error)
	GetPublicKey(ctx context.Context, identityID string) (string, error)
}
