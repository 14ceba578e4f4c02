package errors

import (
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
)

var (
	// ErrMissingIdentityID covers missing identifiers on identity routes
	ErrMissingIdentityID = pkgerrors.NewValidationError("no identityId provided")
	// ErrMissingPublicKey is returned when an identity is registered without a key
	ErrMissingPublicKey = pkgerrors.NewValidationError("no publicKey provided")
	// ErrIdentityNotFound is returned when no identity exists for the id
	ErrIdentityNotFound = pkgerrors.NewNotFoundError("identity does not exist")
	// ErrIdentityAlreadyExists is returned when the id is already registered
	ErrIdentityAlreadyExists = pkgerrors.NewValidationError("identity already exists")
	// ErrIdentityNotAuthorized is returned when the caller does not own the identity
	ErrIdentityNotAuthorized = pkgerrors.NewUnauthorizedError("not authorized to modify the identity")
)
