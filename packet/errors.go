package packet

import (
	"errors"
	"fmt"
)

var (
	// ErrBadFrame means a frame length or compression marker was
	// inconsistent with the bytes that followed it.
	ErrBadFrame = errors.New("packet: malformed frame")

	// ErrNoClientboundHandshake is returned when decoding the
	// clientbound direction of the handshake state, which has no
	// packets.
	ErrNoClientboundHandshake = errors.New("packet: handshake state has no clientbound packets")

	// ErrEncryptionUnsupported is returned by the session's
	// encryption hook. The codec stops at the frame layer.
	ErrEncryptionUnsupported = errors.New("packet: protocol encryption not supported")

	// ErrTrailingBytes means a body kept going after the packet's last
	// field. Bodies carry exactly one packet.
	ErrTrailingBytes = errors.New("packet: trailing bytes after fields")
)

// UnknownIDError reports a packet id absent from the catalog for the
// state and direction it arrived under.
type UnknownIDError struct {
	State     State
	Direction Direction
	ID        int32
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("packet: unknown id 0x%02x (%s, %s)", e.ID, e.State, e.Direction)
}

// TooLargeError reports a field that exceeds its wire limit. Limits
// are enforced when encoding, before any bytes are produced.
type TooLargeError struct {
	Field string
	Size  int
	Limit int
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("packet: %s is %d bytes, limit %d", e.Field, e.Size, e.Limit)
}
