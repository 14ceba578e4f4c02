package entities

import "time"

// Topic describes the kind of data published on a channel
type Topic struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

// ChannelInfo is the off-ledger metadata of a channel. The subscriber
// list is an advisory projection of the subscription records and is not
// used for authorization decisions.
type ChannelInfo struct {
	ChannelAddress string    `json:"channelAddress"`
	AuthorID       string    `json:"authorId"`
	Name           string    `json:"name,omitempty"`
	Description    string    `json:"description,omitempty"`
	SubscriberIDs  []string  `json:"subscriberIds"`
	Topics         []Topic   `json:"topics"`
	CreatedDate    time.Time `json:"created,omitempty"`
	LatestMessage  time.Time `json:"latestMessage,omitempty"`
}

// HasSubscriber reports whether the identity is already on the
// subscriber list.
func (c *ChannelInfo) HasSubscriber(identityID string) bool {
	for _, id := range c.SubscriberIDs {
		if id == identityID {
			return true
		}
	}
	return false
}
