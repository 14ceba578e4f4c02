package entities

// AccessRights determine what a subscriber may do on a channel
type AccessRights string

const (
	AccessRightsRead         AccessRights = "Read"
	AccessRightsWrite        AccessRights = "Write"
	AccessRightsReadAndWrite AccessRights = "ReadAndWrite"
	AccessRightsAudit        AccessRights = "Audit"
)

// SubscriptionType distinguishes the channel author from subscribers
type SubscriptionType string

const (
	SubscriptionTypeSubscriber SubscriptionType = "Subscriber"
	SubscriptionTypeAuthor     SubscriptionType = "Author"
)

// Subscription grants one identity access to a channel. There is at most
// one subscription per (channelAddress, identityId) pair and at most one
// per (channelAddress, publicKey).
type Subscription struct {
	ChannelAddress   string           `json:"channelAddress"`
	IdentityID       string           `json:"identityId"`
	Type             SubscriptionType `json:"type"`
	AccessRights     AccessRights     `json:"accessRights"`
	IsAuthorized     bool             `json:"isAuthorized"`
	PublicKey        string           `json:"publicKey,omitempty"`
	PskID            string           `json:"pskId,omitempty"`
	KeyloadLink      string           `json:"keyloadLink,omitempty"`
	SubscriptionLink string           `json:"subscriptionLink,omitempty"`
	// State is the exported representation of the ledger subscription
	// handle. Opaque to this service; only the streams gateway can
	// produce or restore it.
	State string `json:"state,omitempty"`
}

// UsesPresharedKey reports whether the subscription identifies itself
// with a preshared key instead of a public key.
func (s *Subscription) UsesPresharedKey() bool {
	return s.PskID != ""
}
