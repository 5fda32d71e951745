package crypto

import (
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/box"
)

// KeyPair represents a NaCl crypto_box key pair used for sealing and
// opening envelopes.
type KeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// GenerateKeyPair creates a new random NaCl key pair.
func GenerateKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	keyPair := &KeyPair{
		Public:  *publicKey,
		Private: *privateKey,
	}

	return keyPair, nil
}

// FromSecretKey creates a key pair from an existing private key.
// The public key is recomputed as the Curve25519 scalar-base product
// of the private key.
func FromSecretKey(secretKey [32]byte) (*KeyPair, error) {
	// Validate the secret key
	if isZeroKey(secretKey) {
		return nil, errors.New("invalid secret key: all zeros")
	}

	var publicKey [32]byte
	curve25519.ScalarBaseMult(&publicKey, &secretKey)

	return &KeyPair{
		Public:  publicKey,
		Private: secretKey,
	}, nil
}

// isZeroKey checks if a key consists of all zeros.
func isZeroKey(key [32]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
