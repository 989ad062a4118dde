package wire

import (
	"io"

	"github.com/google/uuid"
)

// UUIDs travel as 16 raw bytes, most significant first, which matches
// uuid.UUID's in-memory layout exactly.

// AppendUUID appends the 16-byte big-endian form of id to dst.
func AppendUUID(dst []byte, id uuid.UUID) []byte {
	return append(dst, id[:]...)
}

// ReadUUID reads 16 bytes from r.
func ReadUUID(r io.Reader) (uuid.UUID, error) {
	var id uuid.UUID
	if _, err := io.ReadFull(r, id[:]); err != nil {
		return uuid.UUID{}, readErr(err)
	}
	return id, nil
}

// DecodeUUID decodes a UUID from the front of b, returning the bytes
// consumed (always 16 on success).
func DecodeUUID(b []byte) (uuid.UUID, int, error) {
	if len(b) < 16 {
		return uuid.UUID{}, 0, ErrMissingData
	}
	var id uuid.UUID
	copy(id[:], b[:16])
	return id, 16, nil
}
