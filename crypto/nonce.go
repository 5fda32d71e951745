package crypto

import (
	"crypto/rand"
)

// Nonce is a 24-byte value used for encryption. A nonce must never be
// reused under the same key; reuse breaks both confidentiality and
// authenticity of every message encrypted with it.
type Nonce [24]byte

// GenerateNonce creates a cryptographically secure random nonce.
func GenerateNonce() (Nonce, error) {
	var nonce Nonce
	_, err := rand.Read(nonce[:])
	if err != nil {
		return Nonce{}, err
	}
	return nonce, nil
}
