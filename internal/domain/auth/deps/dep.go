package deps

import (
	"context"

	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/entities"
)

// NonceRepository defines the nonce storage contract. Get returns
// (nil, nil) when no challenge is pending.
type NonceRepository interface {
	Upsert(ctx context.Context, identityID, nonce string) error
	Get(ctx context.Context, identityID string) (*entities.Nonce, error)
	Delete(ctx context.Context, identityID string) error
}

// IdentityKeyProvider resolves the registered public key of an identity
type IdentityKeyProvider interface {
	GetPublicKey(ctx context.Context, identityID string) (string, error)
}

// AuthService is the ownership proof flow consumed by the HTTP
// delivery layer.
type AuthService interface {
	GetNonce(ctx context.Context, identityID string) (string, error)
	ProveOwnership(ctx context.Context, identityID, signedNonce string) (string, error)
}
