package errors

import (
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
)

var (
	// ErrMissingChannelOrIdentity covers missing request identifiers
	ErrMissingChannelOrIdentity = pkgerrors.NewValidationError("no channelAddress or identityId provided")
	// ErrMissingPublicKey covers the administrative add path
	ErrMissingPublicKey = pkgerrors.NewValidationError("no channelAddress, identityId or publicKey provided")
	// ErrAlreadyRequested is returned when the pair already holds a subscription
	ErrAlreadyRequested = pkgerrors.NewValidationError("subscription already requested")
	// ErrAlreadyAdded is returned by the administrative add on an existing pair
	ErrAlreadyAdded = pkgerrors.NewValidationError("subscription already added")
	// ErrPublicKeyInUse is returned when the minted public key is already
	// bound to another identity on the channel. Surfaced sanitized.
	ErrPublicKeyInUse = pkgerrors.NewValidationError("public key already used")
	// ErrSubscriptionNotFound is returned when no record exists for the pair
	ErrSubscriptionNotFound = pkgerrors.NewNotFoundError("no subscription found")
	// ErrUpdateNotAuthorized is returned when the caller is neither the
	// channel author nor the subscription owner
	ErrUpdateNotAuthorized = pkgerrors.NewUnauthorizedError("not authorized to update the subscription")
	// ErrDeleteNotAuthorized mirrors ErrUpdateNotAuthorized for deletion
	ErrDeleteNotAuthorized = pkgerrors.NewUnauthorizedError("not authorized to delete the subscription")
	// ErrRequestFailed is the sanitized failure surfaced to the requester
	ErrRequestFailed = pkgerrors.NewInternalError("could not request the subscription")
)
