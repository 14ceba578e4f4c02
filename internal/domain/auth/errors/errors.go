package errors

import (
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
)

var (
	// ErrMissingIdentityID covers missing identifiers on authentication routes
	ErrMissingIdentityID = pkgerrors.NewValidationError("no identityId provided")
	// ErrMissingSignature is returned when the proof carries no signed nonce
	ErrMissingSignature = pkgerrors.NewValidationError("no signedNonce provided")
	// ErrNoNonceRequested is returned when proving without a prior challenge
	ErrNoNonceRequested = pkgerrors.NewValidationError("no nonce requested")
	// ErrNonceExpired is returned when the challenge outlived its TTL
	ErrNonceExpired = pkgerrors.NewUnauthorizedError("nonce expired")
	// ErrInvalidSignature is returned when the signature does not verify
	// against the registered public key
	ErrInvalidSignature = pkgerrors.NewUnauthorizedError("signature does not match public key")
)
