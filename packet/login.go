package packet

import (
	"github.com/google/uuid"

	"craftwire.dev/wire"
)

// Property is one entry of a profile's property list, typically the
// base64 textures blob. A nil Signature means unsigned.
type Property struct {
	Name      string
	Value     string
	Signature *string
}

// LoginStart begins the login flow with the client's claimed profile.
type LoginStart struct {
	Name     string
	PlayerID uuid.UUID
}

func (LoginStart) ID() int32            { return 0x00 }
func (LoginStart) State() State         { return StateLogin }
func (LoginStart) Direction() Direction { return Serverbound }

func (p LoginStart) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("username", len(p.Name), MaxUsername); err != nil {
		return nil, err
	}
	dst = wire.AppendString(dst, p.Name)
	dst = wire.AppendUUID(dst, p.PlayerID)
	return dst, nil
}

// EncryptionResponse answers an EncryptionRequest. Everything after it
// would be encrypted; see Session.EnableEncryption.
type EncryptionResponse struct {
	SharedSecret []byte
	VerifyToken  []byte
}

func (EncryptionResponse) ID() int32            { return 0x01 }
func (EncryptionResponse) State() State         { return StateLogin }
func (EncryptionResponse) Direction() Direction { return Serverbound }

func (p EncryptionResponse) appendFields(dst []byte) ([]byte, error) {
	dst = wire.AppendVarInt(dst, int32(len(p.SharedSecret)))
	dst = append(dst, p.SharedSecret...)
	dst = wire.AppendVarInt(dst, int32(len(p.VerifyToken)))
	dst = append(dst, p.VerifyToken...)
	return dst, nil
}

// LoginPluginResponse answers a LoginPluginRequest. A nil Data means
// the client did not understand the channel.
type LoginPluginResponse struct {
	MessageID int32
	Data      []byte
}

func (LoginPluginResponse) ID() int32            { return 0x02 }
func (LoginPluginResponse) State() State         { return StateLogin }
func (LoginPluginResponse) Direction() Direction { return Serverbound }

func (p LoginPluginResponse) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("login plugin data", len(p.Data), MaxLoginPluginData); err != nil {
		return nil, err
	}
	dst = wire.AppendVarInt(dst, p.MessageID)
	dst = wire.AppendBool(dst, p.Data != nil)
	return append(dst, p.Data...), nil
}

// LoginAcknowledged moves the connection into the configuration state.
type LoginAcknowledged struct{}

func (LoginAcknowledged) ID() int32            { return 0x03 }
func (LoginAcknowledged) State() State         { return StateLogin }
func (LoginAcknowledged) Direction() Direction { return Serverbound }

func (LoginAcknowledged) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// LoginCookieResponse returns a stored cookie, or nil when the client
// has none under the key.
type LoginCookieResponse struct {
	Key     wire.Identifier
	Payload []byte
}

func (LoginCookieResponse) ID() int32            { return 0x04 }
func (LoginCookieResponse) State() State         { return StateLogin }
func (LoginCookieResponse) Direction() Direction { return Serverbound }

func (p LoginCookieResponse) appendFields(dst []byte) ([]byte, error) {
	return appendCookieResponse(dst, p.Key, p.Payload)
}

// LoginDisconnect ends the login flow with a rich-text reason, carried
// as a JSON document.
type LoginDisconnect struct {
	Reason string
}

func (LoginDisconnect) ID() int32            { return 0x00 }
func (LoginDisconnect) State() State         { return StateLogin }
func (LoginDisconnect) Direction() Direction { return Clientbound }

func (p LoginDisconnect) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendString(dst, p.Reason), nil
}

// EncryptionRequest starts a key exchange the codec itself does not
// complete.
type EncryptionRequest struct {
	ServerID           string
	PublicKey          []byte
	VerifyToken        []byte
	ShouldAuthenticate bool
}

func (EncryptionRequest) ID() int32            { return 0x01 }
func (EncryptionRequest) State() State         { return StateLogin }
func (EncryptionRequest) Direction() Direction { return Clientbound }

func (p EncryptionRequest) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("server id", len(p.ServerID), MaxServerID); err != nil {
		return nil, err
	}
	dst = wire.AppendString(dst, p.ServerID)
	dst = wire.AppendVarInt(dst, int32(len(p.PublicKey)))
	dst = append(dst, p.PublicKey...)
	dst = wire.AppendVarInt(dst, int32(len(p.VerifyToken)))
	dst = append(dst, p.VerifyToken...)
	dst = wire.AppendBool(dst, p.ShouldAuthenticate)
	return dst, nil
}

// LoginSuccess confirms the profile the server settled on.
type LoginSuccess struct {
	PlayerID            uuid.UUID
	Username            string
	Properties          []Property
	StrictErrorHandling bool
}

func (LoginSuccess) ID() int32            { return 0x02 }
func (LoginSuccess) State() State         { return StateLogin }
func (LoginSuccess) Direction() Direction { return Clientbound }

func (p LoginSuccess) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("username", len(p.Username), MaxUsername); err != nil {
		return nil, err
	}
	dst = wire.AppendUUID(dst, p.PlayerID)
	dst = wire.AppendString(dst, p.Username)
	dst = wire.AppendVarInt(dst, int32(len(p.Properties)))
	for _, prop := range p.Properties {
		if err := checkLen("property name", len(prop.Name), MaxProperty); err != nil {
			return nil, err
		}
		if err := checkLen("property value", len(prop.Value), MaxProperty); err != nil {
			return nil, err
		}
		dst = wire.AppendString(dst, prop.Name)
		dst = wire.AppendString(dst, prop.Value)
		if prop.Signature != nil {
			if err := checkLen("property signature", len(*prop.Signature), MaxProperty); err != nil {
				return nil, err
			}
			dst = wire.AppendBool(dst, true)
			dst = wire.AppendString(dst, *prop.Signature)
		} else {
			dst = wire.AppendBool(dst, false)
		}
	}
	dst = wire.AppendBool(dst, p.StrictErrorHandling)
	return dst, nil
}

// SetCompression arms the compression threshold for every frame that
// follows it, in both directions.
type SetCompression struct {
	Threshold int32
}

func (SetCompression) ID() int32            { return 0x03 }
func (SetCompression) State() State         { return StateLogin }
func (SetCompression) Direction() Direction { return Clientbound }

func (p SetCompression) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendVarInt(dst, p.Threshold), nil
}

// LoginPluginRequest lets the server negotiate over a custom channel
// before login completes. Data runs to the end of the packet.
type LoginPluginRequest struct {
	MessageID int32
	Channel   wire.Identifier
	Data      []byte
}

func (LoginPluginRequest) ID() int32            { return 0x04 }
func (LoginPluginRequest) State() State         { return StateLogin }
func (LoginPluginRequest) Direction() Direction { return Clientbound }

func (p LoginPluginRequest) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("login plugin data", len(p.Data), MaxLoginPluginData); err != nil {
		return nil, err
	}
	dst = wire.AppendVarInt(dst, p.MessageID)
	dst = wire.AppendIdentifier(dst, p.Channel)
	return append(dst, p.Data...), nil
}

// LoginCookieRequest asks the client for a cookie stored under Key.
type LoginCookieRequest struct {
	Key wire.Identifier
}

func (LoginCookieRequest) ID() int32            { return 0x05 }
func (LoginCookieRequest) State() State         { return StateLogin }
func (LoginCookieRequest) Direction() Direction { return Clientbound }

func (p LoginCookieRequest) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendIdentifier(dst, p.Key), nil
}

// appendCookieResponse encodes the shared key + optional payload shape
// used by the login and configuration cookie responses.
func appendCookieResponse(dst []byte, key wire.Identifier, payload []byte) ([]byte, error) {
	if err := checkLen("cookie payload", len(payload), MaxCookieSize); err != nil {
		return nil, err
	}
	dst = wire.AppendIdentifier(dst, key)
	if payload == nil {
		return wire.AppendBool(dst, false), nil
	}
	dst = wire.AppendBool(dst, true)
	dst = wire.AppendVarInt(dst, int32(len(payload)))
	return append(dst, payload...), nil
}

// decodeCookieResponse is the inverse of appendCookieResponse.
func decodeCookieResponse(dec *decoder) (wire.Identifier, []byte, error) {
	key, err := dec.identifier()
	if err != nil {
		return wire.Identifier{}, nil, err
	}
	present, err := dec.boolean()
	if err != nil {
		return wire.Identifier{}, nil, err
	}
	if !present {
		return key, nil, nil
	}
	payload, err := dec.byteSlice()
	if err != nil {
		return wire.Identifier{}, nil, err
	}
	return key, payload, nil
}

func decodeLogin(d Direction, id int32, dec *decoder) (Packet, error) {
	if d == Serverbound {
		return decodeLoginServerbound(id, dec)
	}
	return decodeLoginClientbound(id, dec)
}

func decodeLoginServerbound(id int32, dec *decoder) (Packet, error) {
	switch id {
	case 0x00:
		var p LoginStart
		var err error
		if p.Name, err = dec.str(); err != nil {
			return nil, err
		}
		if p.PlayerID, err = dec.uuid(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x01:
		var p EncryptionResponse
		var err error
		if p.SharedSecret, err = dec.byteSlice(); err != nil {
			return nil, err
		}
		if p.VerifyToken, err = dec.byteSlice(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x02:
		var p LoginPluginResponse
		var err error
		if p.MessageID, err = dec.varint(); err != nil {
			return nil, err
		}
		understood, err := dec.boolean()
		if err != nil {
			return nil, err
		}
		if understood {
			p.Data = dec.rest()
		}
		return p, nil
	case 0x03:
		return LoginAcknowledged{}, nil
	case 0x04:
		key, payload, err := decodeCookieResponse(dec)
		if err != nil {
			return nil, err
		}
		return LoginCookieResponse{Key: key, Payload: payload}, nil
	default:
		return nil, &UnknownIDError{State: StateLogin, Direction: Serverbound, ID: id}
	}
}

func decodeLoginClientbound(id int32, dec *decoder) (Packet, error) {
	switch id {
	case 0x00:
		var p LoginDisconnect
		var err error
		if p.Reason, err = dec.str(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x01:
		var p EncryptionRequest
		var err error
		if p.ServerID, err = dec.str(); err != nil {
			return nil, err
		}
		if p.PublicKey, err = dec.byteSlice(); err != nil {
			return nil, err
		}
		if p.VerifyToken, err = dec.byteSlice(); err != nil {
			return nil, err
		}
		if p.ShouldAuthenticate, err = dec.boolean(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x02:
		var p LoginSuccess
		var err error
		if p.PlayerID, err = dec.uuid(); err != nil {
			return nil, err
		}
		if p.Username, err = dec.str(); err != nil {
			return nil, err
		}
		count, err := dec.varint()
		if err != nil {
			return nil, err
		}
		for i := int32(0); i < count; i++ {
			var prop Property
			if prop.Name, err = dec.str(); err != nil {
				return nil, err
			}
			if prop.Value, err = dec.str(); err != nil {
				return nil, err
			}
			signed, err := dec.boolean()
			if err != nil {
				return nil, err
			}
			if signed {
				sig, err := dec.str()
				if err != nil {
					return nil, err
				}
				prop.Signature = &sig
			}
			p.Properties = append(p.Properties, prop)
		}
		if p.StrictErrorHandling, err = dec.boolean(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x03:
		var p SetCompression
		var err error
		if p.Threshold, err = dec.varint(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x04:
		var p LoginPluginRequest
		var err error
		if p.MessageID, err = dec.varint(); err != nil {
			return nil, err
		}
		if p.Channel, err = dec.identifier(); err != nil {
			return nil, err
		}
		p.Data = dec.rest()
		return p, nil
	case 0x05:
		var p LoginCookieRequest
		var err error
		if p.Key, err = dec.identifier(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &UnknownIDError{State: StateLogin, Direction: Clientbound, ID: id}
	}
}
