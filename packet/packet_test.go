package packet

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"craftwire.dev/chat"
	"craftwire.dev/wire"
)

func mustID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid: %v", err)
	}
	return id
}

func ident(ns, sel string) wire.Identifier {
	return wire.Identifier{Namespace: ns, Selector: sel}
}

func TestHandshakeBytes(t *testing.T) {
	p := Handshake{
		ProtocolVersion: 758,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       NextStatus,
	}
	body, err := Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	frame, err := AppendFrame(nil, body, CompressionOff)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	want := []byte{
		0x10,
		0x00,
		0xf6, 0x05,
		0x09, 'l', 'o', 'c', 'a', 'l', 'h', 'o', 's', 't',
		0x63, 0xdd,
		0x01,
	}
	if !bytes.Equal(frame, want) {
		t.Fatalf("frame:\ngot  % x\nwant % x", frame, want)
	}

	got, err := Decode(StateHandshake, Serverbound, body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("decode: got %+v", got)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	sig := "c2lnbmVk"
	playerID := mustID(t, "f84c6a79-0a4e-45e0-879b-cd49ebd4c4e2")
	packets := []Packet{
		Handshake{ProtocolVersion: ProtocolVersion, ServerAddress: "mc.example.org", ServerPort: 25565, NextState: NextTransfer},

		StatusRequest{},
		PingRequest{Payload: -9223372036854775808},
		StatusResponse{Status: StatusDocument{
			Version:     StatusVersion{Name: ProtocolName, Protocol: ProtocolVersion},
			Players:     StatusPlayers{Max: 20, Online: 1, Sample: []PlayerSample{{Name: "steve", ID: playerID}}},
			Description: &chat.Component{Text: "A server"},
		}},
		PingResponse{Payload: 42},

		LoginStart{Name: "steve", PlayerID: playerID},
		EncryptionResponse{SharedSecret: []byte{1, 2, 3}, VerifyToken: []byte{4, 5}},
		LoginPluginResponse{MessageID: 7, Data: []byte("reply")},
		LoginPluginResponse{MessageID: 8},
		LoginAcknowledged{},
		LoginCookieResponse{Key: ident("minecraft", "session"), Payload: []byte{0xca, 0xfe}},
		LoginCookieResponse{Key: ident("minecraft", "session"), Payload: []byte{}},
		LoginCookieResponse{Key: ident("minecraft", "session")},
		LoginPluginResponse{MessageID: 9, Data: []byte{}},
		LoginDisconnect{Reason: `{"text":"bye"}`},
		EncryptionRequest{ServerID: "", PublicKey: []byte{9, 9}, VerifyToken: []byte{1}, ShouldAuthenticate: true},
		LoginSuccess{
			PlayerID: playerID,
			Username: "steve",
			Properties: []Property{
				{Name: "textures", Value: "ZGF0YQ==", Signature: &sig},
				{Name: "plain", Value: "v"},
			},
			StrictErrorHandling: true,
		},
		SetCompression{Threshold: 256},
		LoginPluginRequest{MessageID: 7, Channel: ident("fabric", "registry/sync"), Data: []byte{0x01}},
		LoginCookieRequest{Key: ident("minecraft", "session")},

		ClientInformation{
			Locale:              "en_US",
			ViewDistance:        12,
			ChatMode:            ChatSystem,
			ChatColors:          true,
			SkinParts:           SkinCape | SkinHat,
			MainHand:            HandRight,
			AllowServerListings: true,
		},
		ConfigCookieResponse{Key: ident("minecraft", "session"), Payload: []byte{1}},
		ServerboundConfigPluginMessage{Channel: ident("minecraft", "brand"), Data: []byte("vanilla")},
		AcknowledgeFinishConfiguration{},
		ServerboundConfigKeepAlive{Payload: 123456789},
		ConfigPong{Payload: -5},
		ResourcePackResponse{PackID: playerID, Result: PackAccepted},
		KnownPacks{Packs: []KnownPack{{Namespace: "minecraft", ID: "core", Version: "1.21.1"}}},
		ConfigCookieRequest{Key: ident("minecraft", "session")},
		ClientboundConfigPluginMessage{Channel: ident("minecraft", "brand"), Data: []byte("paper")},
		ConfigDisconnect{Reason: `{"translate":"multiplayer.disconnect.generic"}`},
		FinishConfiguration{},
		ClientboundConfigKeepAlive{Payload: -1},
		ConfigPing{Payload: 7},

		ClientboundPlayKeepAlive{Payload: 99},
		StartConfiguration{},
		PlayDisconnect{Reason: `{"text":"server closed"}`},
		AcknowledgeConfiguration{},
		ServerboundPlayKeepAlive{Payload: 99},
	}
	for _, p := range packets {
		body, err := Marshal(p)
		if err != nil {
			t.Fatalf("%T: marshal: %v", p, err)
		}
		got, err := Decode(p.State(), p.Direction(), body)
		if err != nil {
			t.Fatalf("%T: decode: %v", p, err)
		}
		if !reflect.DeepEqual(got, p) {
			t.Fatalf("%T: round trip:\ngot  %+v\nwant %+v", p, got, p)
		}

		// A second encode of the decoded value must reproduce the bytes.
		again, err := Marshal(got)
		if err != nil {
			t.Fatalf("%T: re-marshal: %v", p, err)
		}
		if !bytes.Equal(again, body) {
			t.Fatalf("%T: re-encode:\ngot  % x\nwant % x", p, again, body)
		}
	}
}

func TestDecodeUnknownID(t *testing.T) {
	_, err := Decode(StateStatus, Serverbound, []byte{0x05})
	var unknown *UnknownIDError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownIDError", err)
	}
	if unknown.State != StateStatus || unknown.Direction != Serverbound || unknown.ID != 0x05 {
		t.Fatalf("got %+v", unknown)
	}

	if _, err := Decode(StateHandshake, Clientbound, []byte{0x00}); !errors.Is(err, ErrNoClientboundHandshake) {
		t.Fatalf("clientbound handshake: got %v", err)
	}
}

func TestEncodeLimits(t *testing.T) {
	cases := []struct {
		name  string
		p     Packet
		field string
	}{
		{"username", LoginStart{Name: "seventeen_chars__"}, "username"},
		{"locale", ClientInformation{Locale: "seventeen_chars__"}, "locale"},
		{"server id", EncryptionRequest{ServerID: "twenty-one characters"}, "server id"},
		{"cookie", LoginCookieResponse{Key: ident("minecraft", "c"), Payload: make([]byte, MaxCookieSize+1)}, "cookie payload"},
		{"plugin message", ServerboundConfigPluginMessage{Channel: ident("minecraft", "brand"), Data: make([]byte, MaxChannelData+1)}, "plugin message data"},
		{"login plugin", LoginPluginRequest{Channel: ident("minecraft", "c"), Data: make([]byte, MaxLoginPluginData+1)}, "login plugin data"},
		{"address", Handshake{ServerAddress: string(make([]byte, 256)), NextState: NextStatus}, "server address"},
	}
	for _, tc := range cases {
		_, err := Marshal(tc.p)
		var tooLarge *TooLargeError
		if !errors.As(err, &tooLarge) {
			t.Fatalf("%s: got %v, want TooLargeError", tc.name, err)
		}
		if tooLarge.Field != tc.field {
			t.Fatalf("%s: got field %q", tc.name, tooLarge.Field)
		}
	}
}

func TestEncodeEnumBounds(t *testing.T) {
	bad := []Packet{
		Handshake{ServerAddress: "h", NextState: 0},
		Handshake{ServerAddress: "h", NextState: 4},
		ClientInformation{Locale: "en", ChatMode: 3},
		ClientInformation{Locale: "en", MainHand: 2},
		ResourcePackResponse{Result: 8},
	}
	for _, p := range bad {
		if _, err := Marshal(p); !errors.Is(err, wire.ErrEnumOutOfBound) {
			t.Fatalf("%T: got %v, want ErrEnumOutOfBound", p, err)
		}
	}

	// The same bounds hold on decode.
	body := wire.AppendVarInt(nil, 0x00)
	body = wire.AppendVarInt(body, 758)
	body = wire.AppendString(body, "h")
	body = wire.AppendUint16(body, 25565)
	body = wire.AppendVarInt(body, 4)
	if _, err := Decode(StateHandshake, Serverbound, body); !errors.Is(err, wire.ErrEnumOutOfBound) {
		t.Fatalf("decode next state 4: got %v", err)
	}
}

func TestOptionalPayloadPresence(t *testing.T) {
	// Present-but-empty and absent are distinct wire shapes; decode
	// must keep them apart so a re-encode reproduces the bytes.
	cookie := wire.AppendVarInt(nil, 0x01)
	cookie = wire.AppendString(cookie, "minecraft:k")
	cookie = wire.AppendBool(cookie, true)
	cookie = wire.AppendVarInt(cookie, 0)

	plugin := wire.AppendVarInt(nil, 0x02)
	plugin = wire.AppendVarInt(plugin, 7)
	plugin = wire.AppendBool(plugin, true)

	cases := []struct {
		name string
		st   State
		body []byte
		data func(Packet) []byte
	}{
		{"config cookie", StateConfiguration, cookie, func(p Packet) []byte { return p.(ConfigCookieResponse).Payload }},
		{"login plugin", StateLogin, plugin, func(p Packet) []byte { return p.(LoginPluginResponse).Data }},
	}
	for _, tc := range cases {
		p, err := Decode(tc.st, Serverbound, tc.body)
		if err != nil {
			t.Fatalf("%s: decode: %v", tc.name, err)
		}
		if d := tc.data(p); d == nil || len(d) != 0 {
			t.Fatalf("%s: payload = %#v, want non-nil empty", tc.name, d)
		}
		again, err := Marshal(p)
		if err != nil {
			t.Fatalf("%s: re-marshal: %v", tc.name, err)
		}
		if !bytes.Equal(again, tc.body) {
			t.Fatalf("%s: re-encode:\ngot  % x\nwant % x", tc.name, again, tc.body)
		}
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	for _, p := range []Packet{LoginAcknowledged{}, StatusRequest{}, SetCompression{Threshold: 64}} {
		body, err := Marshal(p)
		if err != nil {
			t.Fatalf("%T: marshal: %v", p, err)
		}
		if _, err := Decode(p.State(), p.Direction(), append(body, 0x00)); !errors.Is(err, ErrTrailingBytes) {
			t.Fatalf("%T: got %v, want ErrTrailingBytes", p, err)
		}
	}
}

func TestDecodeTruncated(t *testing.T) {
	body, err := Marshal(LoginStart{Name: "steve", PlayerID: uuid.UUID{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 1; i < len(body); i++ {
		if _, err := Decode(StateLogin, Serverbound, body[:i]); !errors.Is(err, wire.ErrMissingData) {
			t.Fatalf("cut at %d: got %v, want ErrMissingData", i, err)
		}
	}
}
