package dto

import "github.com/iotaledger/e-commerce-tools/internal/domain/subscription/entities"

// RequestSubscriptionBody is the request body for requesting a channel
// subscription. Seed and PresharedKey are forwarded to the ledger and
// never persisted.
type RequestSubscriptionBody struct {
	AccessRights entities.AccessRights `json:"accessRights"`
	Seed         string                `json:"seed,omitempty"`
	PresharedKey string                `json:"presharedKey,omitempty"`
}

// RequestSubscriptionResponse is returned to the requester. The seed is
// only set when one was generated or used upstream.
type RequestSubscriptionResponse struct {
	Seed             string `json:"seed,omitempty"`
	SubscriptionLink string `json:"subscriptionLink"`
}

// SubscriptionPatch is a merge patch for a stored subscription. Nil
// fields are left untouched.
type SubscriptionPatch struct {
	AccessRights     *entities.AccessRights `json:"accessRights,omitempty"`
	IsAuthorized     *bool                  `json:"isAuthorized,omitempty"`
	KeyloadLink      *string                `json:"keyloadLink,omitempty"`
	SubscriptionLink *string                `json:"subscriptionLink,omitempty"`
	State            *string                `json:"state,omitempty"`
}

// IsEmpty reports whether the patch carries no changes
func (p *SubscriptionPatch) IsEmpty() bool {
	return p == nil ||
		(p.AccessRights == nil && p.IsAuthorized == nil && p.KeyloadLink == nil &&
			p.SubscriptionLink == nil && p.State == nil)
}
