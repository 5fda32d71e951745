package sealed

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/sealed/codec"
	"github.com/opd-ai/sealed/crypto"
)

// Envelope wire layout, fixed field order:
//
//	[ source_pk : 32 bytes ]
//	[ nonce     : 24 bytes ]
//	[ mac       : 16 bytes ]
//	[ ciphertext: N bytes  ]
//
// N equals the canonically encoded plaintext length; there is no
// padding and no internal framing. Framing the envelope itself, when
// several share a stream, is the caller's responsibility.
const (
	publicKeySize = 32
	nonceSize     = 24

	// EnvelopeOverhead is the fixed number of bytes an envelope adds
	// on top of its encoded plaintext.
	EnvelopeOverhead = publicKeySize + nonceSize + crypto.TagSize
)

// Sealed is an encrypted, authenticated envelope holding one value of
// type T. The type parameter exists only at compile time; it is not
// written to the wire, so two envelopes of different payload types can
// be byte-identical. Type safety is a caller-side guarantee, not a
// wire-format one.
//
// A Sealed value is inert data: it can be marshaled, stored, and
// forwarded freely. Only Open touches the key material.
type Sealed[T any] struct {
	sourcePK   [32]byte
	nonce      crypto.Nonce
	mac        crypto.Tag
	ciphertext []byte
}

// Seal encrypts plaintext for the holder of destinationPK, signed into
// the envelope as coming from sourceSK's public counterpart.
//
// The plaintext is canonically encoded, then encrypted in detached
// mode under a fresh random nonce and a key derived from the X25519
// shared secret and the sender's public key. Values the canonical
// codec cannot represent cause an error; no partial envelope is ever
// produced.
func Seal[T any](destinationPK, sourceSK [32]byte, plaintext T) (*Sealed[T], error) {
	keyPair, err := crypto.FromSecretKey(sourceSK)
	if err != nil {
		return nil, fmt.Errorf("sealed: deriving sender public key: %w", err)
	}

	sharedSecret := crypto.PrecomputeSharedSecret(destinationPK, sourceSK)
	return SealPrecomputed[T](keyPair.Public, sharedSecret, plaintext)
}

// SealPrecomputed is Seal for callers that have already computed the
// shared secret with crypto.PrecomputeSharedSecret, amortizing the key
// exchange across many envelopes to the same peer. sourcePK must be
// the public counterpart of the secret key the shared secret was
// computed with.
func SealPrecomputed[T any](sourcePK, sharedSecret [32]byte, plaintext T) (*Sealed[T], error) {
	encoded, err := codec.Marshal(plaintext)
	if err != nil {
		return nil, fmt.Errorf("sealed: encoding plaintext: %w", err)
	}

	key := crypto.DeriveSendKey(sharedSecret, sourcePK)

	nonce, err := crypto.GenerateNonce()
	if err != nil {
		crypto.ZeroBytes(encoded)
		crypto.ZeroBytes(key[:])
		return nil, fmt.Errorf("sealed: generating nonce: %w", err)
	}

	ciphertext, mac, err := crypto.EncryptDetached(encoded, nonce, key)
	crypto.ZeroBytes(encoded)
	crypto.ZeroBytes(key[:])
	if err != nil {
		return nil, fmt.Errorf("sealed: encrypting: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":          "SealPrecomputed",
		"source_key_prefix": fmt.Sprintf("%x", sourcePK[:8]),
		"ciphertext_size":   len(ciphertext),
	}).Debug("Envelope sealed")

	return &Sealed[T]{
		sourcePK:   sourcePK,
		nonce:      nonce,
		mac:        mac,
		ciphertext: ciphertext,
	}, nil
}

// Open authenticates and decrypts the envelope with the destination's
// secret key, computing the shared secret from the embedded sender
// public key. On success the caller owns the returned Opened value and
// must Close it after use.
//
// Any failure returns ErrDecryptionFailed with no further detail and
// no partial plaintext, regardless of whether the key was wrong or the
// envelope was corrupted or tampered with.
func (s *Sealed[T]) Open(destinationSK [32]byte) (*Opened[T], error) {
	sharedSecret := crypto.PrecomputeSharedSecret(s.sourcePK, destinationSK)
	return s.OpenPrecomputed(sharedSecret)
}

// OpenPrecomputed is Open for callers holding a precomputed shared
// secret for the envelope's sender.
func (s *Sealed[T]) OpenPrecomputed(sharedSecret [32]byte) (*Opened[T], error) {
	// Derived from the embedded, not-yet-verified sender key. A forged
	// sender key yields a key the tag cannot verify under.
	key := crypto.DeriveSendKey(sharedSecret, s.sourcePK)

	plaintext, err := crypto.DecryptDetached(s.ciphertext, s.mac, s.nonce, key)
	crypto.ZeroBytes(key[:])
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":          "OpenPrecomputed",
			"source_key_prefix": fmt.Sprintf("%x", s.sourcePK[:8]),
		}).Debug("Envelope failed authentication")
		return nil, ErrDecryptionFailed
	}

	return &Opened[T]{plaintext: plaintext}, nil
}

// SourcePK returns the sender public key embedded in the envelope.
// It is unauthenticated until a successful Open validates it: anyone
// can construct an envelope claiming any sender key.
func (s *Sealed[T]) SourcePK() [32]byte {
	return s.sourcePK
}

// MarshalBinary encodes the envelope in its canonical wire layout.
// It implements encoding.BinaryMarshaler, which is also what lets an
// envelope nest inside another sealed payload.
func (s Sealed[T]) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, EnvelopeOverhead+len(s.ciphertext))
	out = append(out, s.sourcePK[:]...)
	out = append(out, s.nonce[:]...)
	out = append(out, s.mac[:]...)
	out = append(out, s.ciphertext...)
	return out, nil
}

// UnmarshalBinary decodes an envelope from its canonical wire layout,
// consuming the entire input: every byte after the fixed header is
// ciphertext. It implements encoding.BinaryUnmarshaler.
func (s *Sealed[T]) UnmarshalBinary(data []byte) error {
	if len(data) < EnvelopeOverhead {
		return fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedEnvelope, len(data), EnvelopeOverhead)
	}

	copy(s.sourcePK[:], data[:publicKeySize])
	copy(s.nonce[:], data[publicKeySize:publicKeySize+nonceSize])
	copy(s.mac[:], data[publicKeySize+nonceSize:EnvelopeOverhead])
	s.ciphertext = append([]byte(nil), data[EnvelopeOverhead:]...)
	return nil
}
