package wire

import (
	"io"
	"unicode/utf8"
)

// Strings are length-prefixed by a varint giving the byte count, not
// the character count. Decode enforces valid UTF-8; the vanilla
// protocol documents "modified UTF-8" but every tracked peer emits
// plain UTF-8, so that is what this codec speaks.

// AppendString appends the varint byte-length prefix and the raw
// bytes of s to dst.
func AppendString(dst []byte, s string) []byte {
	dst = AppendVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// ReadString reads a length-prefixed string from r, returning the
// string and the total number of bytes consumed including the prefix.
func ReadString(r io.Reader) (string, int, error) {
	size, n, err := ReadVarInt(r)
	if err != nil {
		return "", 0, err
	}
	if size < 0 {
		return "", 0, ErrMissingData
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", 0, readErr(err)
	}
	if !utf8.Valid(buf) {
		return "", 0, ErrInvalidString
	}
	return string(buf), n + int(size), nil
}

// DecodeString decodes a length-prefixed string from the front of b.
func DecodeString(b []byte) (string, int, error) {
	size, n, err := DecodeVarInt(b)
	if err != nil {
		return "", 0, err
	}
	if size < 0 || len(b) < n+int(size) {
		return "", 0, ErrMissingData
	}
	raw := b[n : n+int(size)]
	if !utf8.Valid(raw) {
		return "", 0, ErrInvalidString
	}
	return string(raw), n + int(size), nil
}
