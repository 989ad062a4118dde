package packet

import (
	"craftwire.dev/wire"
)

// NextState names the phase a connection enters after its handshake.
type NextState int32

const (
	NextStatus   NextState = 1
	NextLogin    NextState = 2
	NextTransfer NextState = 3
)

func (n NextState) String() string {
	switch n {
	case NextStatus:
		return "status"
	case NextLogin:
		return "login"
	case NextTransfer:
		return "transfer"
	default:
		return "invalid"
	}
}

// Handshake opens every connection. Transfer behaves like login from
// the protocol's point of view; the flag only tells the server the
// client was handed over from another server.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (Handshake) ID() int32            { return 0x00 }
func (Handshake) State() State         { return StateHandshake }
func (Handshake) Direction() Direction { return Serverbound }

func (p Handshake) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("server address", len(p.ServerAddress), MaxServerAddress); err != nil {
		return nil, err
	}
	if p.NextState < NextStatus || p.NextState > NextTransfer {
		return nil, wire.ErrEnumOutOfBound
	}
	dst = wire.AppendVarInt(dst, p.ProtocolVersion)
	dst = wire.AppendString(dst, p.ServerAddress)
	dst = wire.AppendUint16(dst, p.ServerPort)
	dst = wire.AppendVarInt(dst, int32(p.NextState))
	return dst, nil
}

func decodeHandshake(d Direction, id int32, dec *decoder) (Packet, error) {
	if d == Clientbound {
		return nil, ErrNoClientboundHandshake
	}
	if id != 0x00 {
		return nil, &UnknownIDError{State: StateHandshake, Direction: d, ID: id}
	}
	var p Handshake
	var err error
	if p.ProtocolVersion, err = dec.varint(); err != nil {
		return nil, err
	}
	if p.ServerAddress, err = dec.str(); err != nil {
		return nil, err
	}
	if p.ServerPort, err = dec.uint16(); err != nil {
		return nil, err
	}
	next, err := dec.varint()
	if err != nil {
		return nil, err
	}
	p.NextState = NextState(next)
	if p.NextState < NextStatus || p.NextState > NextTransfer {
		return nil, wire.ErrEnumOutOfBound
	}
	return p, nil
}
