package packet

import (
	"encoding/binary"

	"github.com/google/uuid"

	"craftwire.dev/wire"
)

// Field limits, enforced before any bytes are produced.
const (
	MaxServerAddress   = 255
	MaxUsername        = 16
	MaxServerID        = 20
	MaxLocale          = 16
	MaxCookieSize      = 5120
	MaxChannelData     = 32767
	MaxLoginPluginData = 1048576
	MaxProperty        = 32767
)

func checkLen(field string, size, limit int) error {
	if size > limit {
		return &TooLargeError{Field: field, Size: size, Limit: limit}
	}
	return nil
}

// decoder is a cursor over one packet body. Reads never retain the
// underlying buffer; variable-length fields are copied out.
type decoder struct {
	buf []byte
	off int
}

func (d *decoder) take(n int) ([]byte, error) {
	if n < 0 || len(d.buf)-d.off < n {
		return nil, wire.ErrMissingData
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

func (d *decoder) varint() (int32, error) {
	v, n, err := wire.DecodeVarInt(d.buf[d.off:])
	if err != nil {
		return 0, err
	}
	d.off += n
	return v, nil
}

func (d *decoder) str() (string, error) {
	s, n, err := wire.DecodeString(d.buf[d.off:])
	if err != nil {
		return "", err
	}
	d.off += n
	return s, nil
}

func (d *decoder) identifier() (wire.Identifier, error) {
	s, err := d.str()
	if err != nil {
		return wire.Identifier{}, err
	}
	return wire.ParseIdentifier(s)
}

func (d *decoder) uuid() (uuid.UUID, error) {
	id, n, err := wire.DecodeUUID(d.buf[d.off:])
	if err != nil {
		return uuid.UUID{}, err
	}
	d.off += n
	return id, nil
}

func (d *decoder) boolean() (bool, error) {
	b, err := d.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, wire.ErrInvalidBool
	}
}

func (d *decoder) uint8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) int8() (int8, error) {
	v, err := d.uint8()
	return int8(v), err
}

func (d *decoder) uint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) int32() (int32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (d *decoder) int64() (int64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// byteSlice reads a varint-prefixed byte array. The result is never
// nil: a zero-length array decodes to an empty slice, keeping the
// present-but-empty shape of optional payloads distinct from absent.
func (d *decoder) byteSlice() ([]byte, error) {
	n, err := d.varint()
	if err != nil {
		return nil, err
	}
	b, err := d.take(int(n))
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// rest consumes everything up to the end of the body. Like byteSlice,
// the result is never nil.
func (d *decoder) rest() []byte {
	b := make([]byte, len(d.buf)-d.off)
	copy(b, d.buf[d.off:])
	d.off = len(d.buf)
	return b
}
