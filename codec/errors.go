package codec

import "errors"

// Errors returned by Marshal and Unmarshal. All decode failures wrap
// one of these sentinels, so callers can classify with errors.Is.
var (
	// ErrUnsupportedType indicates a value whose shape the canonical
	// encoding cannot represent.
	ErrUnsupportedType = errors.New("codec: unsupported type")

	// ErrUnexpectedEOF indicates the input ended inside a value.
	ErrUnexpectedEOF = errors.New("codec: unexpected end of input")

	// ErrInvalidLength indicates a length prefix that overruns the
	// remaining input or the platform's address space.
	ErrInvalidLength = errors.New("codec: length prefix out of range")

	// ErrInvalidEncoding indicates bytes that violate the canonical
	// format: a bad bool byte, invalid UTF-8, a duplicate map key.
	ErrInvalidEncoding = errors.New("codec: invalid encoding")

	// ErrTrailingBytes indicates input remaining after a complete value.
	ErrTrailingBytes = errors.New("codec: trailing bytes after value")

	// ErrDepthExceeded indicates a value nested deeper than the codec
	// is willing to follow.
	ErrDepthExceeded = errors.New("codec: nesting depth exceeded")
)
