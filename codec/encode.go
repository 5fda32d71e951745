package codec

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"sort"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// maxDepth bounds recursion through nested values so that cyclic
// pointer graphs and pathological inputs fail with an error instead of
// exhausting the stack.
const maxDepth = 1024

var binaryMarshalerType = reflect.TypeOf((*encoding.BinaryMarshaler)(nil)).Elem()

// Marshal encodes v into its canonical byte representation.
func Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil interface value", ErrUnsupportedType)
	}

	var buf bytes.Buffer
	if err := encodeValue(&buf, reflect.ValueOf(v), 0); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Marshal",
			"type":     fmt.Sprintf("%T", v),
			"error":    err.Error(),
		}).Debug("Canonical encoding failed")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Marshal",
		"type":         fmt.Sprintf("%T", v),
		"encoded_size": buf.Len(),
	}).Debug("Value canonically encoded")

	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return ErrDepthExceeded
	}

	// Pointers are handled as optional values before the marshaler
	// check so that nil pointers to marshaler types stay encodable.
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			buf.WriteByte(0)
			return nil
		}
		buf.WriteByte(1)
		return encodeValue(buf, rv.Elem(), depth+1)
	}

	if m, ok := binaryMarshalerFor(rv); ok {
		data, err := m.MarshalBinary()
		if err != nil {
			return fmt.Errorf("codec: marshaling %s: %w", rv.Type(), err)
		}
		writeUint64(buf, uint64(len(data)))
		buf.Write(data)
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}

	case reflect.Int8:
		buf.WriteByte(byte(rv.Int()))
	case reflect.Int16:
		writeUint16(buf, uint16(rv.Int()))
	case reflect.Int32:
		writeUint32(buf, uint32(rv.Int()))
	case reflect.Int64, reflect.Int:
		writeUint64(buf, uint64(rv.Int()))

	case reflect.Uint8:
		buf.WriteByte(byte(rv.Uint()))
	case reflect.Uint16:
		writeUint16(buf, uint16(rv.Uint()))
	case reflect.Uint32:
		writeUint32(buf, uint32(rv.Uint()))
	case reflect.Uint64, reflect.Uint:
		writeUint64(buf, rv.Uint())

	case reflect.Float32:
		writeUint32(buf, math.Float32bits(float32(rv.Float())))
	case reflect.Float64:
		writeUint64(buf, math.Float64bits(rv.Float()))

	case reflect.String:
		s := rv.String()
		if !utf8.ValidString(s) {
			return fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidEncoding)
		}
		writeUint64(buf, uint64(len(s)))
		buf.WriteString(s)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			writeUint64(buf, uint64(rv.Len()))
			buf.Write(rv.Bytes())
			return nil
		}
		writeUint64(buf, uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(buf, rv.Index(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			for i := 0; i < rv.Len(); i++ {
				buf.WriteByte(byte(rv.Index(i).Uint()))
			}
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := encodeValue(buf, rv.Index(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				return fmt.Errorf("%w: struct %s has unexported field %s",
					ErrUnsupportedType, t, t.Field(i).Name)
			}
			if err := encodeValue(buf, rv.Field(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Map:
		return encodeMap(buf, rv, depth)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}

	return nil
}

// binaryMarshalerFor reports whether rv's type carries MarshalBinary,
// on either the value or the pointer receiver.
func binaryMarshalerFor(rv reflect.Value) (encoding.BinaryMarshaler, bool) {
	if rv.Type().Implements(binaryMarshalerType) {
		return rv.Interface().(encoding.BinaryMarshaler), true
	}
	if reflect.PointerTo(rv.Type()).Implements(binaryMarshalerType) {
		if rv.CanAddr() {
			return rv.Addr().Interface().(encoding.BinaryMarshaler), true
		}
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p.Interface().(encoding.BinaryMarshaler), true
	}
	return nil, false
}

// encodeMap writes map entries sorted by encoded key bytes. Go map
// iteration order is randomized, so sorting is what keeps the encoding
// deterministic.
func encodeMap(buf *bytes.Buffer, rv reflect.Value, depth int) error {
	type entry struct {
		key, value []byte
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var kb, vb bytes.Buffer
		if err := encodeValue(&kb, iter.Key(), depth+1); err != nil {
			return err
		}
		if err := encodeValue(&vb, iter.Value(), depth+1); err != nil {
			return err
		}
		entries = append(entries, entry{key: kb.Bytes(), value: vb.Bytes()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})

	writeUint64(buf, uint64(len(entries)))
	for _, e := range entries {
		buf.Write(e.key)
		buf.Write(e.value)
	}
	return nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
