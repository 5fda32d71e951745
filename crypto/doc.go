// Package crypto implements the cryptographic primitives backing the
// sealed envelope format.
//
// This package provides the primitive layer for sealed-go: NaCl-based
// key generation, X25519 shared-secret precomputation, detached
// XSalsa20-Poly1305 authenticated encryption, the per-direction send-key
// derivation, and memory-safe handling of sensitive buffers. Everything
// is built on Go's x/crypto packages and is byte-compatible with the
// corresponding libsodium crypto_box operations.
//
// # Core Types
//
// The package defines the fixed-width values that appear on the wire:
//
//   - [KeyPair]: NaCl crypto_box key pair (Curve25519)
//   - [Nonce]: 24-byte random nonce, unique per encryption
//   - [Tag]: 16-byte detached Poly1305 authenticator
//
// # Encryption and Decryption
//
// Encryption operates in detached mode: the authenticator is returned
// separately from the ciphertext, which stays exactly as long as the
// plaintext:
//
//	shared := crypto.PrecomputeSharedSecret(peerPublicKey, myPrivateKey)
//	key := crypto.DeriveSendKey(shared, myPublicKey)
//	nonce, _ := crypto.GenerateNonce()
//	ciphertext, tag, _ := crypto.EncryptDetached(plaintext, nonce, key)
//
// All functions are stateless and safe for concurrent use; the only
// shared resource is crypto/rand, which is safe for concurrent readers.
package crypto
