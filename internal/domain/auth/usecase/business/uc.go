package business

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"github.com/iotaledger/e-commerce-tools/config"
	"github.com/iotaledger/e-commerce-tools/internal/domain/auth/deps"
	autherrors "github.com/iotaledger/e-commerce-tools/internal/domain/auth/errors"
	"github.com/iotaledger/e-commerce-tools/internal/infrastructure/metrics"
	"github.com/iotaledger/e-commerce-tools/pkg/httputil"
)

// UseCase implements the nonce ownership proof flow. Identities sign a
// server-issued nonce with the ed25519 key registered for them; a valid
// signature yields a JWT.
type UseCase struct {
	nonceRepo deps.NonceRepository
	keys      deps.IdentityKeyProvider
	authCfg   *config.AuthConfig
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewUseCase creates a new authentication use case
func NewUseCase(
	nonceRepo deps.NonceRepository,
	keys deps.IdentityKeyProvider,
	authCfg *config.AuthConfig,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		nonceRepo: nonceRepo,
		keys:      keys,
		authCfg:   authCfg,
		logger:    logger,
		metrics:   m,
	}
}

// GetNonce issues a fresh challenge for the identity, replacing any
// pending one.
func (u *UseCase) GetNonce(ctx context.Context, identityID string) (string, error) {
	if identityID == "" {
		return "", autherrors.ErrMissingIdentityID
	}

	// Resolving the key up front rejects challenges for unknown identities
	if _, err := u.keys.GetPublicKey(ctx, identityID); err != nil {
		return "", err
	}

	nonce := uuid.NewString()
	if err := u.nonceRepo.Upsert(ctx, identityID, nonce); err != nil {
		u.logger.Error().Err(err).
			Str("identity_id", identityID).
			Msg("Failed to store nonce")
		return "", err
	}

	u.logger.Debug().
		Str("identity_id", identityID).
		Msg("Nonce issued")

	return nonce, nil
}

// ProveOwnership verifies the hex-encoded ed25519 signature of the
// pending nonce against the identity's registered base58 public key and
// issues a JWT. The nonce is consumed on success.
func (u *UseCase) ProveOwnership(ctx context.Context, identityID, signedNonce string) (string, error) {
	if identityID == "" {
		return "", autherrors.ErrMissingIdentityID
	}
	if signedNonce == "" {
		return "", autherrors.ErrMissingSignature
	}

	nonce, err := u.nonceRepo.Get(ctx, identityID)
	if err != nil {
		u.logger.Error().Err(err).
			Str("identity_id", identityID).
			Msg("Failed to get nonce")
		return "", err
	}
	if nonce == nil {
		u.metrics.RecordAuthProofFailure("no_nonce")
		return "", autherrors.ErrNoNonceRequested
	}
	if time.Since(nonce.CreatedAt) > u.authCfg.NonceTTL {
		u.metrics.RecordAuthProofFailure("nonce_expired")
		return "", autherrors.ErrNonceExpired
	}

	publicKeyBase58, err := u.keys.GetPublicKey(ctx, identityID)
	if err != nil {
		return "", err
	}

	publicKey, err := base58.Decode(publicKeyBase58)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		u.logger.Warn().
			Str("identity_id", identityID).
			Msg("Registered public key is not a valid ed25519 key")
		u.metrics.RecordAuthProofFailure("invalid_public_key")
		return "", autherrors.ErrInvalidSignature
	}

	signature, err := hex.DecodeString(signedNonce)
	if err != nil || len(signature) != ed25519.SignatureSize {
		u.metrics.RecordAuthProofFailure("malformed_signature")
		return "", autherrors.ErrInvalidSignature
	}

	if !ed25519.Verify(publicKey, []byte(nonce.Value), signature) {
		u.logger.Warn().
			Str("identity_id", identityID).
			Msg("Ownership proof failed")
		u.metrics.RecordAuthProofFailure("signature_mismatch")
		return "", autherrors.ErrInvalidSignature
	}

	// The challenge is single use
	if err := u.nonceRepo.Delete(ctx, identityID); err != nil {
		u.logger.Warn().Err(err).
			Str("identity_id", identityID).
			Msg("Failed to delete consumed nonce")
	}

	token, err := httputil.CreateIdentityToken(identityID, u.authCfg.JWTSecret, u.authCfg.JWTExpiration)
	if err != nil {
		u.logger.Error().Err(err).
			Str("identity_id", identityID).
			Msg("Failed to issue token")
		return "", err
	}

	u.metrics.AuthProofsTotal.Inc()

	u.logger.Info().
		Str("identity_id", identityID).
		Msg("Ownership proven, token issued")

	return token, nil
}
