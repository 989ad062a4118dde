// Package wire implements the primitive binary codecs of the protocol:
// variable-length integers, packed block positions, length-prefixed
// strings, namespaced identifiers and the fixed-width numeric types.
//
// All multi-byte values are big-endian. Every decoder comes in two
// shapes: a slice form returning (value, bytes consumed, error) and a
// blocking io.Reader form. Encoders append to a caller-owned slice or
// write to an io.Writer.
package wire

import "io"

const (
	// MaxVarIntLen is the longest legal encoding of a 32-bit varint.
	MaxVarIntLen = 5
	// MaxVarLongLen is the longest legal encoding of a 64-bit varlong.
	MaxVarLongLen = 10

	continuationBit = 0x80
	segmentMask     = 0x7f
)

// AppendVarInt appends the minimal base-128 encoding of v to dst.
// The sign bit is not special-cased: negative values always take the
// full five groups.
func AppendVarInt(dst []byte, v int32) []byte {
	u := uint32(v)
	for {
		b := byte(u & segmentMask)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|continuationBit)
			continue
		}
		return append(dst, b)
	}
}

// AppendVarLong appends the minimal base-128 encoding of v to dst.
func AppendVarLong(dst []byte, v int64) []byte {
	u := uint64(v)
	for {
		b := byte(u & segmentMask)
		u >>= 7
		if u != 0 {
			dst = append(dst, b|continuationBit)
			continue
		}
		return append(dst, b)
	}
}

// VarIntLen reports how many bytes AppendVarInt would emit for v.
func VarIntLen(v int32) int {
	n := 1
	for u := uint32(v) >> 7; u != 0; u >>= 7 {
		n++
	}
	return n
}

// VarLongLen reports how many bytes AppendVarLong would emit for v.
func VarLongLen(v int64) int {
	n := 1
	for u := uint64(v) >> 7; u != 0; u >>= 7 {
		n++
	}
	return n
}

// DecodeVarInt decodes a varint from the front of b. It returns the
// value and the number of bytes consumed. A fifth group with any bit
// outside the low four data bits set is rejected as ErrIntTooLong.
func DecodeVarInt(b []byte) (int32, int, error) {
	var v uint32
	for i := 0; i < MaxVarIntLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrMissingData
		}
		c := b[i]
		v |= uint32(c&segmentMask) << (7 * i)
		if i == MaxVarIntLen-1 && c&0xf0 != 0 {
			return 0, 0, ErrIntTooLong
		}
		if c&continuationBit == 0 {
			return int32(v), i + 1, nil
		}
	}
	// Only reachable with a continuation bit set on the final group,
	// which the high-bits check above already rejects. Still an error
	// path, never a panic.
	return 0, 0, ErrIntTooLong
}

// DecodeVarLong decodes a varlong from the front of b, returning the
// value and the number of bytes consumed.
func DecodeVarLong(b []byte) (int64, int, error) {
	var v uint64
	for i := 0; i < MaxVarLongLen; i++ {
		if i >= len(b) {
			return 0, 0, ErrMissingData
		}
		c := b[i]
		v |= uint64(c&segmentMask) << (7 * i)
		if i == MaxVarLongLen-1 && c&0xfe != 0 {
			return 0, 0, ErrIntTooLong
		}
		if c&continuationBit == 0 {
			return int64(v), i + 1, nil
		}
	}
	return 0, 0, ErrIntTooLong
}

// ReadVarInt reads a varint from r, returning the value and the number
// of bytes consumed. Short reads surface as ErrMissingData.
func ReadVarInt(r io.Reader) (int32, int, error) {
	var v uint32
	for i := 0; i < MaxVarIntLen; i++ {
		c, err := ReadUint8(r)
		if err != nil {
			return 0, 0, err
		}
		v |= uint32(c&segmentMask) << (7 * i)
		if i == MaxVarIntLen-1 && c&0xf0 != 0 {
			return 0, 0, ErrIntTooLong
		}
		if c&continuationBit == 0 {
			return int32(v), i + 1, nil
		}
	}
	return 0, 0, ErrIntTooLong
}

// ReadVarLong reads a varlong from r, returning the value and the
// number of bytes consumed.
func ReadVarLong(r io.Reader) (int64, int, error) {
	var v uint64
	for i := 0; i < MaxVarLongLen; i++ {
		c, err := ReadUint8(r)
		if err != nil {
			return 0, 0, err
		}
		v |= uint64(c&segmentMask) << (7 * i)
		if i == MaxVarLongLen-1 && c&0xfe != 0 {
			return 0, 0, ErrIntTooLong
		}
		if c&continuationBit == 0 {
			return int64(v), i + 1, nil
		}
	}
	return 0, 0, ErrIntTooLong
}

// WriteVarInt writes the minimal encoding of v to w.
func WriteVarInt(w io.Writer, v int32) error {
	var buf [MaxVarIntLen]byte
	_, err := w.Write(AppendVarInt(buf[:0], v))
	return err
}

// WriteVarLong writes the minimal encoding of v to w.
func WriteVarLong(w io.Writer, v int64) error {
	var buf [MaxVarLongLen]byte
	_, err := w.Write(AppendVarLong(buf[:0], v))
	return err
}
