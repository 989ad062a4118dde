package packet

import (
	"encoding/json"

	"github.com/google/uuid"

	"craftwire.dev/chat"
	"craftwire.dev/wire"
)

// StatusDocument is the JSON document carried by a status response.
type StatusDocument struct {
	Version            StatusVersion   `json:"version"`
	Players            StatusPlayers   `json:"players"`
	Description        *chat.Component `json:"description,omitempty"`
	Favicon            string          `json:"favicon,omitempty"`
	EnforcesSecureChat bool            `json:"enforcesSecureChat,omitempty"`
}

type StatusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type StatusPlayers struct {
	Max    int32          `json:"max"`
	Online int32          `json:"online"`
	Sample []PlayerSample `json:"sample,omitempty"`
}

type PlayerSample struct {
	Name string    `json:"name"`
	ID   uuid.UUID `json:"id"`
}

// StatusRequest asks the server for its status document.
type StatusRequest struct{}

func (StatusRequest) ID() int32            { return 0x00 }
func (StatusRequest) State() State         { return StateStatus }
func (StatusRequest) Direction() Direction { return Serverbound }

func (StatusRequest) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// PingRequest carries an opaque payload the server echoes back,
// usually a clock reading used to estimate latency.
type PingRequest struct {
	Payload int64
}

func (PingRequest) ID() int32            { return 0x01 }
func (PingRequest) State() State         { return StateStatus }
func (PingRequest) Direction() Direction { return Serverbound }

func (p PingRequest) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

// StatusResponse answers a StatusRequest with the status document.
type StatusResponse struct {
	Status StatusDocument
}

func (StatusResponse) ID() int32            { return 0x00 }
func (StatusResponse) State() State         { return StateStatus }
func (StatusResponse) Direction() Direction { return Clientbound }

func (p StatusResponse) appendFields(dst []byte) ([]byte, error) {
	doc, err := json.Marshal(p.Status)
	if err != nil {
		return nil, err
	}
	return wire.AppendString(dst, string(doc)), nil
}

// PingResponse echoes a PingRequest's payload.
type PingResponse struct {
	Payload int64
}

func (PingResponse) ID() int32            { return 0x01 }
func (PingResponse) State() State         { return StateStatus }
func (PingResponse) Direction() Direction { return Clientbound }

func (p PingResponse) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

func decodeStatus(d Direction, id int32, dec *decoder) (Packet, error) {
	switch {
	case d == Serverbound && id == 0x00:
		return StatusRequest{}, nil
	case d == Serverbound && id == 0x01:
		var p PingRequest
		var err error
		if p.Payload, err = dec.int64(); err != nil {
			return nil, err
		}
		return p, nil
	case d == Clientbound && id == 0x00:
		doc, err := dec.str()
		if err != nil {
			return nil, err
		}
		var p StatusResponse
		if err := json.Unmarshal([]byte(doc), &p.Status); err != nil {
			return nil, err
		}
		return p, nil
	case d == Clientbound && id == 0x01:
		var p PingResponse
		var err error
		if p.Payload, err = dec.int64(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &UnknownIDError{State: StateStatus, Direction: d, ID: id}
	}
}
