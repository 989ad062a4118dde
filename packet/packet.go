// Package packet implements the framed packet layer: the length
// prefix with optional zlib compression, the per-state catalogs of
// packet shapes, and the session state machine that selects between
// them.
package packet

import (
	"craftwire.dev/wire"
)

// ProtocolVersion is the protocol revision the catalogs describe.
const ProtocolVersion = 767

// ProtocolName is the game version matching ProtocolVersion.
const ProtocolName = "1.21.1"

// State is the connection phase that selects a packet catalog.
type State uint8

const (
	StateHandshake State = iota
	StateStatus
	StateLogin
	StateConfiguration
	StatePlay
)

func (s State) String() string {
	switch s {
	case StateHandshake:
		return "handshake"
	case StateStatus:
		return "status"
	case StateLogin:
		return "login"
	case StateConfiguration:
		return "configuration"
	case StatePlay:
		return "play"
	default:
		return "invalid"
	}
}

// Direction is the side a packet travels toward.
type Direction uint8

const (
	Serverbound Direction = iota
	Clientbound
)

func (d Direction) String() string {
	if d == Clientbound {
		return "clientbound"
	}
	return "serverbound"
}

// Packet is one catalogued protocol message. The catalog is closed:
// ids are fixed per state and direction, and decoding an id outside
// the catalog fails with UnknownIDError.
type Packet interface {
	ID() int32
	State() State
	Direction() Direction

	appendFields(dst []byte) ([]byte, error)
}

// Marshal encodes the packet id and fields into an unframed body.
func Marshal(p Packet) ([]byte, error) {
	return p.appendFields(wire.AppendVarInt(nil, p.ID()))
}

// Decode parses an unframed packet body under the given state and
// direction. The body must be consumed exactly; leftover bytes after
// the last field are ErrTrailingBytes.
func Decode(st State, d Direction, body []byte) (Packet, error) {
	dec := &decoder{buf: body}
	id, err := dec.varint()
	if err != nil {
		return nil, err
	}
	var p Packet
	switch st {
	case StateHandshake:
		p, err = decodeHandshake(d, id, dec)
	case StateStatus:
		p, err = decodeStatus(d, id, dec)
	case StateLogin:
		p, err = decodeLogin(d, id, dec)
	case StateConfiguration:
		p, err = decodeConfiguration(d, id, dec)
	case StatePlay:
		p, err = decodePlay(d, id, dec)
	default:
		return nil, &UnknownIDError{State: st, Direction: d, ID: id}
	}
	if err != nil {
		return nil, err
	}
	if dec.off != len(body) {
		return nil, ErrTrailingBytes
	}
	return p, nil
}
