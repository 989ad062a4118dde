package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Position is a whole-block world coordinate packed into one 64-bit
// word on the wire: x in the top 26 bits, z in the next 26, y in the
// low 12. Each field is two's-complement at its stored width.
type Position struct {
	X int32
	Y int16
	Z int32
}

const (
	posXBits = 26
	posYBits = 12
	posZBits = 26

	posXMask = 1<<posXBits - 1
	posYMask = 1<<posYBits - 1
	posZMask = 1<<posZBits - 1
)

func (p Position) String() string {
	return fmt.Sprintf("Position{%d, %d, %d}", p.X, p.Y, p.Z)
}

// Pack returns the 64-bit wire word. Inputs are masked to their field
// widths; passing a coordinate outside [-2^25, 2^25) for x/z or
// [-2^11, 2^11) for y is a caller error.
func (p Position) Pack() uint64 {
	return (uint64(uint32(p.X))&posXMask)<<38 |
		(uint64(uint32(p.Z))&posZMask)<<12 |
		uint64(uint16(p.Y))&posYMask
}

// AppendPosition appends the 8-byte packed form of p to dst.
func AppendPosition(dst []byte, p Position) []byte {
	return binary.BigEndian.AppendUint64(dst, p.Pack())
}

// UnpackPosition sign-extends each field of a packed word back to a
// Position.
func UnpackPosition(v uint64) Position {
	x := int32(v >> 38 & posXMask)
	z := int32(v >> 12 & posZMask)
	y := int16(v & posYMask)
	if x >= 1<<(posXBits-1) {
		x -= 1 << posXBits
	}
	if z >= 1<<(posZBits-1) {
		z -= 1 << posZBits
	}
	if y >= 1<<(posYBits-1) {
		y -= 1 << posYBits
	}
	return Position{X: x, Y: y, Z: z}
}

// ReadPosition reads the 8-byte packed form from r.
func ReadPosition(r io.Reader) (Position, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Position{}, readErr(err)
	}
	return UnpackPosition(binary.BigEndian.Uint64(buf[:])), nil
}

// DecodePosition decodes a Position from the front of b, returning the
// number of bytes consumed (always 8 on success).
func DecodePosition(b []byte) (Position, int, error) {
	if len(b) < 8 {
		return Position{}, 0, ErrMissingData
	}
	return UnpackPosition(binary.BigEndian.Uint64(b[:8])), 8, nil
}
