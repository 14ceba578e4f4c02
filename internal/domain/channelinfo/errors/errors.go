package errors

import (
	pkgerrors "github.com/iotaledger/e-commerce-tools/pkg/errors"
)

var (
	// ErrMissingChannelAddress covers missing identifiers on channel routes
	ErrMissingChannelAddress = pkgerrors.NewValidationError("no channelAddress provided")
	// ErrMissingAuthor is returned when a channel is registered without an author
	ErrMissingAuthor = pkgerrors.NewValidationError("no authorId provided")
	// ErrChannelNotFound is returned when no channel info exists for the address
	ErrChannelNotFound = pkgerrors.NewNotFoundError("channel does not exist")
	// ErrChannelAlreadyExists is returned when the address is already registered
	ErrChannelAlreadyExists = pkgerrors.NewValidationError("channel already exists")
	// ErrChannelNotAuthorized is returned when the caller is not the channel author
	ErrChannelNotAuthorized = pkgerrors.NewUnauthorizedError("not authorized to modify the channel")
)
