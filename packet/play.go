package packet

import (
	"craftwire.dev/wire"
)

// The play catalog covers the connection-maintenance subset: keep
// alives, the return trip to configuration, and disconnects.

// ClientboundPlayKeepAlive asks the client to echo the payload back.
type ClientboundPlayKeepAlive struct {
	Payload int64
}

func (ClientboundPlayKeepAlive) ID() int32            { return 0x00 }
func (ClientboundPlayKeepAlive) State() State         { return StatePlay }
func (ClientboundPlayKeepAlive) Direction() Direction { return Clientbound }

func (p ClientboundPlayKeepAlive) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

// StartConfiguration asks the client to re-enter the configuration
// state. The client answers with AcknowledgeConfiguration.
type StartConfiguration struct{}

func (StartConfiguration) ID() int32            { return 0x01 }
func (StartConfiguration) State() State         { return StatePlay }
func (StartConfiguration) Direction() Direction { return Clientbound }

func (StartConfiguration) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// PlayDisconnect ends the connection with a rich-text reason, carried
// as a JSON document.
type PlayDisconnect struct {
	Reason string
}

func (PlayDisconnect) ID() int32            { return 0x02 }
func (PlayDisconnect) State() State         { return StatePlay }
func (PlayDisconnect) Direction() Direction { return Clientbound }

func (p PlayDisconnect) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendString(dst, p.Reason), nil
}

// AcknowledgeConfiguration moves the connection back into the
// configuration state.
type AcknowledgeConfiguration struct{}

func (AcknowledgeConfiguration) ID() int32            { return 0x00 }
func (AcknowledgeConfiguration) State() State         { return StatePlay }
func (AcknowledgeConfiguration) Direction() Direction { return Serverbound }

func (AcknowledgeConfiguration) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// ServerboundPlayKeepAlive echoes a clientbound keep-alive.
type ServerboundPlayKeepAlive struct {
	Payload int64
}

func (ServerboundPlayKeepAlive) ID() int32            { return 0x01 }
func (ServerboundPlayKeepAlive) State() State         { return StatePlay }
func (ServerboundPlayKeepAlive) Direction() Direction { return Serverbound }

func (p ServerboundPlayKeepAlive) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

func decodePlay(d Direction, id int32, dec *decoder) (Packet, error) {
	if d == Serverbound {
		switch id {
		case 0x00:
			return AcknowledgeConfiguration{}, nil
		case 0x01:
			var p ServerboundPlayKeepAlive
			var err error
			if p.Payload, err = dec.int64(); err != nil {
				return nil, err
			}
			return p, nil
		default:
			return nil, &UnknownIDError{State: StatePlay, Direction: Serverbound, ID: id}
		}
	}
	switch id {
	case 0x00:
		var p ClientboundPlayKeepAlive
		var err error
		if p.Payload, err = dec.int64(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x01:
		return StartConfiguration{}, nil
	case 0x02:
		var p PlayDisconnect
		var err error
		if p.Reason, err = dec.str(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &UnknownIDError{State: StatePlay, Direction: Clientbound, ID: id}
	}
}
