package entities

import "time"

// SubscriptionModel is a GORM model for the subscriptions table.
// The two composite unique indexes are the only concurrency control for
// the non-transactional request flow: concurrent duplicate inserts fail
// at the storage layer and are translated to domain conflicts.
type SubscriptionModel struct {
	ID               uint    `gorm:"primaryKey"`
	ChannelAddress   string  `gorm:"not null;size:128;uniqueIndex:uq_channel_identity;uniqueIndex:uq_channel_pubkey;index"`
	IdentityID       string  `gorm:"not null;size:128;uniqueIndex:uq_channel_identity"`
	Type             string  `gorm:"not null;size:32"`
	AccessRights     string  `gorm:"not null;size:32"`
	IsAuthorized     bool    `gorm:"not null;default:false;index"`
	PublicKey        *string `gorm:"size:128;uniqueIndex:uq_channel_pubkey"`
	PskID            *string `gorm:"size:128"`
	KeyloadLink      string  `gorm:"size:256;default:''"`
	SubscriptionLink string  `gorm:"size:256;default:''"`
	State            string  `gorm:"type:text;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// ToEntity converts DB model to domain entity
func (m *SubscriptionModel) ToEntity() *Subscription {
	sub := &Subscription{
		ChannelAddress:   m.ChannelAddress,
		IdentityID:       m.IdentityID,
		Type:             SubscriptionType(m.Type),
		AccessRights:     AccessRights(m.AccessRights),
		IsAuthorized:     m.IsAuthorized,
		KeyloadLink:      m.KeyloadLink,
		SubscriptionLink: m.SubscriptionLink,
		State:            m.State,
	}
	if m.PublicKey != nil {
		sub.PublicKey = *m.PublicKey
	}
	if m.PskID != nil {
		sub.PskID = *m.PskID
	}
	return sub
}

// FromEntity converts a domain entity to the DB model. Empty optional
// keys are stored as NULL so the per-channel public key uniqueness does
// not collide between preshared-key subscriptions.
func FromEntity(s *Subscription) *SubscriptionModel {
	m := &SubscriptionModel{
		ChannelAddress:   s.ChannelAddress,
		IdentityID:       s.IdentityID,
		Type:             string(s.Type),
		AccessRights:     string(s.AccessRights),
		IsAuthorized:     s.IsAuthorized,
		KeyloadLink:      s.KeyloadLink,
		SubscriptionLink: s.SubscriptionLink,
		State:            s.State,
	}
	if s.PublicKey != "" {
		publicKey := s.PublicKey
		m.PublicKey = &publicKey
	}
	if s.PskID != "" {
		pskID := s.PskID
		m.PskID = &pskID
	}
	return m
}
