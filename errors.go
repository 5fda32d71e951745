package sealed

import "errors"

var (
	// ErrDecryptionFailed is returned by Open when authentication of
	// the envelope fails. Wrong keys, corrupted bytes, and deliberate
	// tampering all produce this same error: distinguishing them would
	// hand an attacker an oracle.
	ErrDecryptionFailed = errors.New("sealed: decryption failed")

	// ErrClosed is returned by Deserialize after Close has wiped the
	// plaintext buffer.
	ErrClosed = errors.New("sealed: opened value already closed")

	// ErrTruncatedEnvelope is returned by UnmarshalBinary when the
	// input is shorter than the fixed envelope header.
	ErrTruncatedEnvelope = errors.New("sealed: envelope too short")
)
