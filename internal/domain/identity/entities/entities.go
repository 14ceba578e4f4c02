package entities

import (
	"encoding/json"
	"time"
)

// Identity is a registered decentralized identity. The DID document
// itself lives on the identity ledger; this record is the off-ledger
// registry entry used for lookups and authentication.
type Identity struct {
	IdentityID            string                 `json:"identityId"`
	Username              string                 `json:"username"`
	PublicKey             string                 `json:"publicKey"`
	Role                  string                 `json:"role,omitempty"`
	Claim                 map[string]interface{} `json:"claim,omitempty"`
	VerifiableCredentials []json.RawMessage      `json:"verifiableCredentials,omitempty"`
	RegistrationDate      time.Time              `json:"registrationDate,omitempty"`
}
