package crypto

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/nacl/secretbox"
)

// Tag is a 16-byte detached Poly1305 authenticator computed over the
// ciphertext, nonce, and key as a unit.
type Tag [16]byte

// TagSize is the length of a detached authenticator in bytes.
const TagSize = 16

// EncryptDetached encrypts message with XSalsa20 and authenticates it
// with Poly1305, returning the ciphertext and the detached tag. The
// ciphertext is exactly as long as the message; no padding is added.
//
// The output is byte-compatible with libsodium's
// crypto_secretbox_detached: NaCl's combined secretbox format is the
// tag followed by the ciphertext, so the two are produced together and
// split apart.
func EncryptDetached(message []byte, nonce Nonce, key [32]byte) ([]byte, Tag, error) {
	logrus.WithFields(logrus.Fields{
		"function":     "EncryptDetached",
		"message_size": len(message),
	}).Debug("Encrypting message in detached mode")

	combined := secretbox.Seal(nil, message, (*[24]byte)(&nonce), (*[32]byte)(&key))

	var tag Tag
	copy(tag[:], combined[:TagSize])
	return combined[TagSize:], tag, nil
}

// DecryptDetached verifies the detached tag over ciphertext and, on
// success, returns the decrypted message. On any verification failure
// it returns a single undifferentiated error: wrong key, corrupted
// bytes, and deliberate tampering are indistinguishable to the caller.
func DecryptDetached(ciphertext []byte, tag Tag, nonce Nonce, key [32]byte) ([]byte, error) {
	combined := make([]byte, 0, TagSize+len(ciphertext))
	combined = append(combined, tag[:]...)
	combined = append(combined, ciphertext...)

	message, ok := secretbox.Open(nil, combined, (*[24]byte)(&nonce), (*[32]byte)(&key))
	if !ok {
		return nil, errors.New("decryption failed")
	}

	return message, nil
}
