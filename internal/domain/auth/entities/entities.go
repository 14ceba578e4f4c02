package entities

import "time"

// Nonce is a single-use challenge bound to an identity. Signing it with
// the identity's private key proves key ownership.
type Nonce struct {
	IdentityID string
	Value      string
	CreatedAt  time.Time
}

// NonceModel is a GORM model for the auth_nonces table. One active
// nonce per identity; a new request replaces the previous challenge.
type NonceModel struct {
	ID         uint   `gorm:"primaryKey"`
	IdentityID string `gorm:"not null;size:128;uniqueIndex"`
	Nonce      string `gorm:"not null;size:64"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (NonceModel) TableName() string {
	return "auth_nonces"
}

// ToEntity converts DB model to domain entity
func (m *NonceModel) ToEntity() *Nonce {
	return &Nonce{
		IdentityID: m.IdentityID,
		Value:      m.Nonce,
		CreatedAt:  m.UpdatedAt,
	}
}
