package dto

// NonceResponse carries the challenge issued to an identity
type NonceResponse struct {
	Nonce string `json:"nonce"`
}

// ProveOwnershipBody carries the hex-encoded ed25519 signature of the
// pending nonce.
type ProveOwnershipBody struct {
	SignedNonce string `json:"signedNonce"`
}

// ProveOwnershipResponse carries the issued token
type ProveOwnershipResponse struct {
	JWT string `json:"jwt"`
}
