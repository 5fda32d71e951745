package crypto

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/nacl/box"
)

// PrecomputeSharedSecret computes the symmetric shared secret between
// two parties: X25519 on Curve25519 followed by the HSalsa20 key
// derivation, identical to libsodium's crypto_box_beforenm. The result
// is the same regardless of which party computes it:
//
//	PrecomputeSharedSecret(pkB, skA) == PrecomputeSharedSecret(pkA, skB)
//
// Callers exchanging many messages with the same peer can compute this
// once and reuse it.
func PrecomputeSharedSecret(peerPublicKey, privateKey [32]byte) [32]byte {
	logrus.WithFields(logrus.Fields{
		"function":        "PrecomputeSharedSecret",
		"peer_key_prefix": fmt.Sprintf("%x", peerPublicKey[:8]),
	}).Debug("Precomputing shared secret")

	var sharedSecret [32]byte
	box.Precompute(&sharedSecret, &peerPublicKey, &privateKey)

	return sharedSecret
}

// DeriveSendKey calculates the key used when sending from senderPublicKey:
// the byte-wise XOR of the shared secret with the sender's public key.
//
// The raw shared secret is symmetric, so both directions of a
// conversation would otherwise encrypt under the same key. Folding the
// sender's public key in separates the two directions. Both seal and
// open must derive with the same sender key value for the envelope to
// authenticate.
//
// Needs review by a cryptologist. Is xor safe to use here?
func DeriveSendKey(sharedSecret, senderPublicKey [32]byte) [32]byte {
	var key [32]byte
	for i := range key {
		key[i] = sharedSecret[i] ^ senderPublicKey[i]
	}
	return key
}
