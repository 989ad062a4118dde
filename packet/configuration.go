package packet

import (
	"github.com/google/uuid"

	"craftwire.dev/wire"
)

// ChatMode is the level of chat a client wants to receive.
type ChatMode int32

const (
	// ChatFull accepts all chat messages.
	ChatFull ChatMode = iota
	// ChatSystem accepts command output but not player chat.
	ChatSystem
	// ChatNone hides chat apart from above-hotbar game notices.
	ChatNone
)

// SkinParts is the displayed-skin-layers bit set.
type SkinParts uint8

const (
	SkinCape SkinParts = 1 << iota
	SkinJacket
	SkinLeftSleeve
	SkinRightSleeve
	SkinLeftLeg
	SkinRightLeg
	SkinHat
)

// MainHand is the client's dominant hand setting.
type MainHand int32

const (
	HandLeft MainHand = iota
	HandRight
)

// ResourcePackResult is the client's verdict on a pushed resource pack.
type ResourcePackResult int32

const (
	PackLoaded ResourcePackResult = iota
	PackDeclined
	PackDownloadFailed
	PackAccepted
	PackDownloaded
	PackInvalidURL
	PackReloadFailed
	PackDiscarded
)

// KnownPack names one data pack the peer already has, so the registry
// sync that follows can skip its contents.
type KnownPack struct {
	Namespace string
	ID        string
	Version   string
}

// ClientInformation reports the client's settings.
type ClientInformation struct {
	Locale              string
	ViewDistance        int8
	ChatMode            ChatMode
	ChatColors          bool
	SkinParts           SkinParts
	MainHand            MainHand
	TextFiltering       bool
	AllowServerListings bool
}

func (ClientInformation) ID() int32            { return 0x00 }
func (ClientInformation) State() State         { return StateConfiguration }
func (ClientInformation) Direction() Direction { return Serverbound }

func (p ClientInformation) appendFields(dst []byte) ([]byte, error) {
	if err := checkLen("locale", len(p.Locale), MaxLocale); err != nil {
		return nil, err
	}
	if p.ChatMode < ChatFull || p.ChatMode > ChatNone {
		return nil, wire.ErrEnumOutOfBound
	}
	if p.MainHand < HandLeft || p.MainHand > HandRight {
		return nil, wire.ErrEnumOutOfBound
	}
	dst = wire.AppendString(dst, p.Locale)
	dst = wire.AppendInt8(dst, p.ViewDistance)
	dst = wire.AppendVarInt(dst, int32(p.ChatMode))
	dst = wire.AppendBool(dst, p.ChatColors)
	dst = wire.AppendUint8(dst, uint8(p.SkinParts))
	dst = wire.AppendVarInt(dst, int32(p.MainHand))
	dst = wire.AppendBool(dst, p.TextFiltering)
	dst = wire.AppendBool(dst, p.AllowServerListings)
	return dst, nil
}

// ConfigCookieResponse returns a stored cookie during configuration.
type ConfigCookieResponse struct {
	Key     wire.Identifier
	Payload []byte
}

func (ConfigCookieResponse) ID() int32            { return 0x01 }
func (ConfigCookieResponse) State() State         { return StateConfiguration }
func (ConfigCookieResponse) Direction() Direction { return Serverbound }

func (p ConfigCookieResponse) appendFields(dst []byte) ([]byte, error) {
	return appendCookieResponse(dst, p.Key, p.Payload)
}

// ServerboundConfigPluginMessage carries mod traffic on a named
// channel. Data runs to the end of the packet.
type ServerboundConfigPluginMessage struct {
	Channel wire.Identifier
	Data    []byte
}

func (ServerboundConfigPluginMessage) ID() int32            { return 0x02 }
func (ServerboundConfigPluginMessage) State() State         { return StateConfiguration }
func (ServerboundConfigPluginMessage) Direction() Direction { return Serverbound }

func (p ServerboundConfigPluginMessage) appendFields(dst []byte) ([]byte, error) {
	return appendPluginMessage(dst, p.Channel, p.Data)
}

// AcknowledgeFinishConfiguration moves the connection into the play
// state.
type AcknowledgeFinishConfiguration struct{}

func (AcknowledgeFinishConfiguration) ID() int32            { return 0x03 }
func (AcknowledgeFinishConfiguration) State() State         { return StateConfiguration }
func (AcknowledgeFinishConfiguration) Direction() Direction { return Serverbound }

func (AcknowledgeFinishConfiguration) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// ServerboundConfigKeepAlive echoes a clientbound keep-alive.
type ServerboundConfigKeepAlive struct {
	Payload int64
}

func (ServerboundConfigKeepAlive) ID() int32            { return 0x04 }
func (ServerboundConfigKeepAlive) State() State         { return StateConfiguration }
func (ServerboundConfigKeepAlive) Direction() Direction { return Serverbound }

func (p ServerboundConfigKeepAlive) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

// ConfigPong answers a ConfigPing.
type ConfigPong struct {
	Payload int32
}

func (ConfigPong) ID() int32            { return 0x05 }
func (ConfigPong) State() State         { return StateConfiguration }
func (ConfigPong) Direction() Direction { return Serverbound }

func (p ConfigPong) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt32(dst, p.Payload), nil
}

// ResourcePackResponse reports what the client did with a pushed pack.
type ResourcePackResponse struct {
	PackID uuid.UUID
	Result ResourcePackResult
}

func (ResourcePackResponse) ID() int32            { return 0x06 }
func (ResourcePackResponse) State() State         { return StateConfiguration }
func (ResourcePackResponse) Direction() Direction { return Serverbound }

func (p ResourcePackResponse) appendFields(dst []byte) ([]byte, error) {
	if p.Result < PackLoaded || p.Result > PackDiscarded {
		return nil, wire.ErrEnumOutOfBound
	}
	dst = wire.AppendUUID(dst, p.PackID)
	dst = wire.AppendVarInt(dst, int32(p.Result))
	return dst, nil
}

// KnownPacks lists the data packs the client already has.
type KnownPacks struct {
	Packs []KnownPack
}

func (KnownPacks) ID() int32            { return 0x07 }
func (KnownPacks) State() State         { return StateConfiguration }
func (KnownPacks) Direction() Direction { return Serverbound }

func (p KnownPacks) appendFields(dst []byte) ([]byte, error) {
	dst = wire.AppendVarInt(dst, int32(len(p.Packs)))
	for _, pack := range p.Packs {
		dst = wire.AppendString(dst, pack.Namespace)
		dst = wire.AppendString(dst, pack.ID)
		dst = wire.AppendString(dst, pack.Version)
	}
	return dst, nil
}

// ConfigCookieRequest asks the client for a cookie stored under Key.
type ConfigCookieRequest struct {
	Key wire.Identifier
}

func (ConfigCookieRequest) ID() int32            { return 0x00 }
func (ConfigCookieRequest) State() State         { return StateConfiguration }
func (ConfigCookieRequest) Direction() Direction { return Clientbound }

func (p ConfigCookieRequest) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendIdentifier(dst, p.Key), nil
}

// ClientboundConfigPluginMessage carries mod traffic toward the
// client. Data runs to the end of the packet.
type ClientboundConfigPluginMessage struct {
	Channel wire.Identifier
	Data    []byte
}

func (ClientboundConfigPluginMessage) ID() int32            { return 0x01 }
func (ClientboundConfigPluginMessage) State() State         { return StateConfiguration }
func (ClientboundConfigPluginMessage) Direction() Direction { return Clientbound }

func (p ClientboundConfigPluginMessage) appendFields(dst []byte) ([]byte, error) {
	return appendPluginMessage(dst, p.Channel, p.Data)
}

// ConfigDisconnect ends the connection with a rich-text reason,
// carried as a JSON document.
type ConfigDisconnect struct {
	Reason string
}

func (ConfigDisconnect) ID() int32            { return 0x02 }
func (ConfigDisconnect) State() State         { return StateConfiguration }
func (ConfigDisconnect) Direction() Direction { return Clientbound }

func (p ConfigDisconnect) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendString(dst, p.Reason), nil
}

// FinishConfiguration tells the client the server is done configuring.
// The client answers with AcknowledgeFinishConfiguration.
type FinishConfiguration struct{}

func (FinishConfiguration) ID() int32            { return 0x03 }
func (FinishConfiguration) State() State         { return StateConfiguration }
func (FinishConfiguration) Direction() Direction { return Clientbound }

func (FinishConfiguration) appendFields(dst []byte) ([]byte, error) { return dst, nil }

// ClientboundConfigKeepAlive asks the client to echo the payload back
// promptly or be disconnected.
type ClientboundConfigKeepAlive struct {
	Payload int64
}

func (ClientboundConfigKeepAlive) ID() int32            { return 0x04 }
func (ClientboundConfigKeepAlive) State() State         { return StateConfiguration }
func (ClientboundConfigKeepAlive) Direction() Direction { return Clientbound }

func (p ClientboundConfigKeepAlive) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt64(dst, p.Payload), nil
}

// ConfigPing asks the client for a ConfigPong with the same payload.
type ConfigPing struct {
	Payload int32
}

func (ConfigPing) ID() int32            { return 0x05 }
func (ConfigPing) State() State         { return StateConfiguration }
func (ConfigPing) Direction() Direction { return Clientbound }

func (p ConfigPing) appendFields(dst []byte) ([]byte, error) {
	return wire.AppendInt32(dst, p.Payload), nil
}

// appendPluginMessage encodes the channel + trailing data shape shared
// by the plugin message packets.
func appendPluginMessage(dst []byte, channel wire.Identifier, data []byte) ([]byte, error) {
	if err := checkLen("plugin message data", len(data), MaxChannelData); err != nil {
		return nil, err
	}
	dst = wire.AppendIdentifier(dst, channel)
	return append(dst, data...), nil
}

func decodeConfiguration(d Direction, id int32, dec *decoder) (Packet, error) {
	if d == Serverbound {
		return decodeConfigServerbound(id, dec)
	}
	return decodeConfigClientbound(id, dec)
}

func decodeConfigServerbound(id int32, dec *decoder) (Packet, error) {
	switch id {
	case 0x00:
		var p ClientInformation
		var err error
		if p.Locale, err = dec.str(); err != nil {
			return nil, err
		}
		if p.ViewDistance, err = dec.int8(); err != nil {
			return nil, err
		}
		mode, err := dec.varint()
		if err != nil {
			return nil, err
		}
		p.ChatMode = ChatMode(mode)
		if p.ChatMode < ChatFull || p.ChatMode > ChatNone {
			return nil, wire.ErrEnumOutOfBound
		}
		if p.ChatColors, err = dec.boolean(); err != nil {
			return nil, err
		}
		parts, err := dec.uint8()
		if err != nil {
			return nil, err
		}
		p.SkinParts = SkinParts(parts)
		hand, err := dec.varint()
		if err != nil {
			return nil, err
		}
		p.MainHand = MainHand(hand)
		if p.MainHand < HandLeft || p.MainHand > HandRight {
			return nil, wire.ErrEnumOutOfBound
		}
		if p.TextFiltering, err = dec.boolean(); err != nil {
			return nil, err
		}
		if p.AllowServerListings, err = dec.boolean(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x01:
		key, payload, err := decodeCookieResponse(dec)
		if err != nil {
			return nil, err
		}
		return ConfigCookieResponse{Key: key, Payload: payload}, nil
	case 0x02:
		var p ServerboundConfigPluginMessage
		var err error
		if p.Channel, err = dec.identifier(); err != nil {
			return nil, err
		}
		p.Data = dec.rest()
		return p, nil
	case 0x03:
		return AcknowledgeFinishConfiguration{}, nil
	case 0x04:
		var p ServerboundConfigKeepAlive
		var err error
		if p.Payload, err = dec.int64(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x05:
		var p ConfigPong
		var err error
		if p.Payload, err = dec.int32(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x06:
		var p ResourcePackResponse
		var err error
		if p.PackID, err = dec.uuid(); err != nil {
			return nil, err
		}
		result, err := dec.varint()
		if err != nil {
			return nil, err
		}
		p.Result = ResourcePackResult(result)
		if p.Result < PackLoaded || p.Result > PackDiscarded {
			return nil, wire.ErrEnumOutOfBound
		}
		return p, nil
	case 0x07:
		count, err := dec.varint()
		if err != nil {
			return nil, err
		}
		var p KnownPacks
		for i := int32(0); i < count; i++ {
			var pack KnownPack
			if pack.Namespace, err = dec.str(); err != nil {
				return nil, err
			}
			if pack.ID, err = dec.str(); err != nil {
				return nil, err
			}
			if pack.Version, err = dec.str(); err != nil {
				return nil, err
			}
			p.Packs = append(p.Packs, pack)
		}
		return p, nil
	default:
		return nil, &UnknownIDError{State: StateConfiguration, Direction: Serverbound, ID: id}
	}
}

func decodeConfigClientbound(id int32, dec *decoder) (Packet, error) {
	switch id {
	case 0x00:
		var p ConfigCookieRequest
		var err error
		if p.Key, err = dec.identifier(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x01:
		var p ClientboundConfigPluginMessage
		var err error
		if p.Channel, err = dec.identifier(); err != nil {
			return nil, err
		}
		p.Data = dec.rest()
		return p, nil
	case 0x02:
		var p ConfigDisconnect
		var err error
		if p.Reason, err = dec.str(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x03:
		return FinishConfiguration{}, nil
	case 0x04:
		var p ClientboundConfigKeepAlive
		var err error
		if p.Payload, err = dec.int64(); err != nil {
			return nil, err
		}
		return p, nil
	case 0x05:
		var p ConfigPing
		var err error
		if p.Payload, err = dec.int32(); err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, &UnknownIDError{State: StateConfiguration, Direction: Clientbound, ID: id}
	}
}
