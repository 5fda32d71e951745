// Package codec implements the canonical byte encoding used by sealed
// envelopes, both for payload plaintext and for envelope fields.
//
// The encoding is deterministic: the same logical value always produces
// byte-identical output, which is what makes encrypted payloads
// reproducible and test vectors stable.
//
// # Wire format
//
// All multi-byte values are big-endian. The rules, by kind:
//
//   - bool: one byte, 0 or 1
//   - int8/uint8: 1 byte; int16/uint16: 2; int32/uint32: 4;
//     int64/uint64/int/uint: 8
//   - float32/float64: IEEE 754 bits, big-endian
//   - string: uint64 length prefix + UTF-8 bytes
//   - slice: uint64 length prefix + elements
//   - array: elements only, no prefix (length is part of the type)
//   - pointer: one presence byte (0 = nil, 1 = value follows)
//   - struct: exported fields in declaration order, no framing
//   - map: uint64 length prefix + entries sorted by encoded key bytes
//   - encoding.BinaryMarshaler: uint64 length prefix + marshaled bytes
//
// Types with unexported struct fields, and chan, func, complex,
// interface, uintptr, and unsafe.Pointer values, are not encodable
// unless they implement encoding.BinaryMarshaler.
//
// # Strictness
//
// Decoding rejects anything outside the format: short buffers, length
// prefixes that overrun the input, bool bytes other than 0 or 1,
// invalid UTF-8 in strings, duplicate map keys, and trailing bytes
// after the value. Malformed input always yields an error, never a
// panic or a silently truncated value.
//
// Nil and empty slices and maps share a single encoding (length 0) and
// decode to nil.
package codec
