package codec

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

var binaryUnmarshalerType = reflect.TypeOf((*encoding.BinaryUnmarshaler)(nil)).Elem()

// Unmarshal decodes the canonical byte representation in data into the
// value pointed to by v, which must be a non-nil pointer. The entire
// input must be consumed: trailing bytes are an error.
func Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", ErrUnsupportedType)
	}

	d := &decoder{data: data}
	if err := d.value(rv.Elem(), 0); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Unmarshal",
			"type":     fmt.Sprintf("%T", v),
			"error":    err.Error(),
		}).Debug("Canonical decoding failed")
		return err
	}
	if d.off != len(d.data) {
		return fmt.Errorf("%w: %d bytes remain", ErrTrailingBytes, len(d.data)-d.off)
	}
	return nil
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) remaining() int {
	return len(d.data) - d.off
}

func (d *decoder) readBytes(n int) ([]byte, error) {
	if n > d.remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrUnexpectedEOF, n, d.remaining())
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) readUint16() (uint16, error) {
	b, err := d.readBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) readUint32() (uint32, error) {
	b, err := d.readBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (d *decoder) readUint64() (uint64, error) {
	b, err := d.readBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// readLength reads a uint64 length prefix and rejects values that
// cannot fit in the remaining input. Every element of a sequence
// occupies at least one byte, so a count above the remaining byte
// count can never be satisfied.
func (d *decoder) readLength() (int, error) {
	n, err := d.readUint64()
	if err != nil {
		return 0, err
	}
	if n > uint64(d.remaining()) {
		return 0, fmt.Errorf("%w: %d exceeds %d remaining bytes", ErrInvalidLength, n, d.remaining())
	}
	return int(n), nil
}

func (d *decoder) value(rv reflect.Value, depth int) error {
	if depth > maxDepth {
		return ErrDepthExceeded
	}

	if rv.Kind() == reflect.Pointer {
		tag, err := d.readByte()
		if err != nil {
			return err
		}
		switch tag {
		case 0:
			rv.SetZero()
			return nil
		case 1:
			if rv.IsNil() {
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			return d.value(rv.Elem(), depth+1)
		default:
			return fmt.Errorf("%w: invalid presence byte 0x%02x", ErrInvalidEncoding, tag)
		}
	}

	if rv.CanAddr() && reflect.PointerTo(rv.Type()).Implements(binaryUnmarshalerType) {
		n, err := d.readLength()
		if err != nil {
			return err
		}
		b, err := d.readBytes(n)
		if err != nil {
			return err
		}
		u := rv.Addr().Interface().(encoding.BinaryUnmarshaler)
		if err := u.UnmarshalBinary(b); err != nil {
			return fmt.Errorf("codec: unmarshaling %s: %w", rv.Type(), err)
		}
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		switch b {
		case 0:
			rv.SetBool(false)
		case 1:
			rv.SetBool(true)
		default:
			return fmt.Errorf("%w: invalid bool byte 0x%02x", ErrInvalidEncoding, b)
		}

	case reflect.Int8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		rv.SetInt(int64(int8(b)))
	case reflect.Int16:
		u, err := d.readUint16()
		if err != nil {
			return err
		}
		rv.SetInt(int64(int16(u)))
	case reflect.Int32:
		u, err := d.readUint32()
		if err != nil {
			return err
		}
		rv.SetInt(int64(int32(u)))
	case reflect.Int64, reflect.Int:
		u, err := d.readUint64()
		if err != nil {
			return err
		}
		if rv.OverflowInt(int64(u)) {
			return fmt.Errorf("%w: integer overflows %s", ErrInvalidEncoding, rv.Type())
		}
		rv.SetInt(int64(u))

	case reflect.Uint8:
		b, err := d.readByte()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(b))
	case reflect.Uint16:
		u, err := d.readUint16()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(u))
	case reflect.Uint32:
		u, err := d.readUint32()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(u))
	case reflect.Uint64, reflect.Uint:
		u, err := d.readUint64()
		if err != nil {
			return err
		}
		if rv.OverflowUint(u) {
			return fmt.Errorf("%w: integer overflows %s", ErrInvalidEncoding, rv.Type())
		}
		rv.SetUint(u)

	case reflect.Float32:
		u, err := d.readUint32()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(math.Float32frombits(u)))
	case reflect.Float64:
		u, err := d.readUint64()
		if err != nil {
			return err
		}
		rv.SetFloat(math.Float64frombits(u))

	case reflect.String:
		n, err := d.readLength()
		if err != nil {
			return err
		}
		b, err := d.readBytes(n)
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return fmt.Errorf("%w: string is not valid UTF-8", ErrInvalidEncoding)
		}
		rv.SetString(string(b))

	case reflect.Slice:
		n, err := d.readLength()
		if err != nil {
			return err
		}
		if n == 0 {
			rv.SetZero()
			return nil
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.readBytes(n)
			if err != nil {
				return err
			}
			rv.SetBytes(append([]byte(nil), b...))
			return nil
		}
		s := reflect.MakeSlice(rv.Type(), n, n)
		for i := 0; i < n; i++ {
			if err := d.value(s.Index(i), depth+1); err != nil {
				return err
			}
		}
		rv.Set(s)

	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b, err := d.readBytes(rv.Len())
			if err != nil {
				return err
			}
			reflect.Copy(rv, reflect.ValueOf(b))
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := d.value(rv.Index(i), depth+1); err != nil {
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
			if err := d.value(rv.Field(i), depth+1); err != nil {
				return err
			}
		}

	case reflect.Map:
		n, err := d.readLength()
		if err != nil {
			return err
		}
		if n == 0 {
			rv.SetZero()
			return nil
		}
		m := reflect.MakeMapWithSize(rv.Type(), n)
		for i := 0; i < n; i++ {
			key := reflect.New(rv.Type().Key()).Elem()
			if err := d.value(key, depth+1); err != nil {
				return err
			}
			if m.MapIndex(key).IsValid() {
				return fmt.Errorf("%w: duplicate map key", ErrInvalidEncoding)
			}
			val := reflect.New(rv.Type().Elem()).Elem()
			if err := d.value(val, depth+1); err != nil {
				return err
			}
			m.SetMapIndex(key, val)
		}
		rv.Set(m)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}

	return nil
}
