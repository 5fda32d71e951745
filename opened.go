package sealed

import (
	"fmt"

	"github.com/opd-ai/sealed/codec"
	"github.com/opd-ai/sealed/crypto"
)

// Opened holds the decrypted plaintext of a successfully opened
// envelope. It is the only way plaintext leaves this package, and it
// owns the buffer: Deserialize reads it any number of times without
// mutating it, and Close wipes it.
//
// An Opened value is not safe for concurrent use.
type Opened[T any] struct {
	plaintext []byte
	closed    bool
}

// Deserialize decodes the plaintext back into a value of the payload
// type. Values the buffer cannot canonically decode to, including any
// trailing bytes, cause an error.
func (o *Opened[T]) Deserialize() (T, error) {
	var v T
	if o.closed {
		return v, ErrClosed
	}
	if err := codec.Unmarshal(o.plaintext, &v); err != nil {
		return v, fmt.Errorf("sealed: decoding plaintext: %w", err)
	}
	return v, nil
}

// Close overwrites every byte of the plaintext buffer with zero.
// It is idempotent and always returns nil, satisfying io.Closer so
// callers can `defer opened.Close()` on every exit path.
//
// The wipe is best effort: it cannot reach copies the runtime may have
// made, nor values already handed out by Deserialize.
func (o *Opened[T]) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	crypto.ZeroBytes(o.plaintext)
	return nil
}
