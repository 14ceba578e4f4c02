package entities

import (
	"encoding/json"
	"time"
)

// IdentityModel is a GORM model for the identities table
type IdentityModel struct {
	ID                    uint                   `gorm:"primaryKey"`
	IdentityID            string                 `gorm:"not null;size:128;uniqueIndex"`
	Username              string                 `gorm:"size:128;index"`
	PublicKey             string                 `gorm:"not null;size:128"`
	Role                  string                 `gorm:"size:64"`
	Claim                 map[string]interface{} `gorm:"serializer:json;type:jsonb"`
	VerifiableCredentials []json.RawMessage      `gorm:"serializer:json;type:jsonb"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (IdentityModel) TableName() string {
	return "identities"
}

// ToEntity converts DB model to domain entity
func (m *IdentityModel) ToEntity() *Identity {
	return &Identity{
		IdentityID:            m.IdentityID,
		Username:              m.Username,
		PublicKey:             m.PublicKey,
		Role:                  m.Role,
		Claim:                 m.Claim,
		VerifiableCredentials: m.VerifiableCredentials,
		RegistrationDate:      m.CreatedAt,
	}
}

// FromEntity converts a domain entity to the DB model
func FromEntity(i *Identity) *IdentityModel {
	return &IdentityModel{
		IdentityID:            i.IdentityID,
		Username:              i.Username,
		PublicKey:             i.PublicKey,
		Role:                  i.Role,
		Claim:                 i.Claim,
		VerifiableCredentials: i.VerifiableCredentials,
	}
}
