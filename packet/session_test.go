package packet

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

// exchange writes p on from and reads it back on to, failing on any
// mismatch. The two sessions model the two ends of one connection.
func exchange(t *testing.T, from, to *Session, d Direction, p Packet) {
	t.Helper()
	var buf bytes.Buffer
	if err := from.WritePacket(&buf, p); err != nil {
		t.Fatalf("%T: write: %v", p, err)
	}
	got, err := to.ReadPacket(&buf, d)
	if err != nil {
		t.Fatalf("%T: read: %v", p, err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("%T: got %+v", p, got)
	}
}

func TestSessionStatusFlow(t *testing.T) {
	client, server := NewSession(), NewSession()
	if client.State() != StateHandshake {
		t.Fatalf("initial state: %v", client.State())
	}

	exchange(t, client, server, Serverbound, Handshake{
		ProtocolVersion: ProtocolVersion,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       NextStatus,
	})
	if client.State() != StateStatus || server.State() != StateStatus {
		t.Fatalf("after handshake: client=%v server=%v", client.State(), server.State())
	}

	exchange(t, client, server, Serverbound, StatusRequest{})
	exchange(t, server, client, Clientbound, StatusResponse{Status: StatusDocument{
		Version: StatusVersion{Name: ProtocolName, Protocol: ProtocolVersion},
		Players: StatusPlayers{Max: 10},
	}})
	exchange(t, client, server, Serverbound, PingRequest{Payload: 1700000000})
	exchange(t, server, client, Clientbound, PingResponse{Payload: 1700000000})
}

func TestSessionLoginToPlayFlow(t *testing.T) {
	client, server := NewSession(), NewSession()

	exchange(t, client, server, Serverbound, Handshake{
		ProtocolVersion: ProtocolVersion,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       NextLogin,
	})
	if client.State() != StateLogin || server.State() != StateLogin {
		t.Fatalf("after handshake: client=%v server=%v", client.State(), server.State())
	}

	exchange(t, client, server, Serverbound, LoginStart{Name: "steve"})

	// Arming compression affects every frame after this one.
	exchange(t, server, client, Clientbound, SetCompression{Threshold: 16})
	if client.Threshold() != 16 || server.Threshold() != 16 {
		t.Fatalf("thresholds: client=%d server=%d", client.Threshold(), server.Threshold())
	}

	// This crosses the armed threshold and travels compressed.
	exchange(t, server, client, Clientbound, LoginSuccess{Username: "steve"})
	exchange(t, client, server, Serverbound, LoginAcknowledged{})
	if client.State() != StateConfiguration || server.State() != StateConfiguration {
		t.Fatalf("after login ack: client=%v server=%v", client.State(), server.State())
	}

	exchange(t, client, server, Serverbound, ClientInformation{Locale: "en_US", ViewDistance: 8, MainHand: HandRight})
	exchange(t, server, client, Clientbound, FinishConfiguration{})
	exchange(t, client, server, Serverbound, AcknowledgeFinishConfiguration{})
	if client.State() != StatePlay || server.State() != StatePlay {
		t.Fatalf("after finish ack: client=%v server=%v", client.State(), server.State())
	}

	exchange(t, server, client, Clientbound, ClientboundPlayKeepAlive{Payload: 7})
	exchange(t, client, server, Serverbound, ServerboundPlayKeepAlive{Payload: 7})

	// And back to configuration for a registry swap.
	exchange(t, server, client, Clientbound, StartConfiguration{})
	exchange(t, client, server, Serverbound, AcknowledgeConfiguration{})
	if client.State() != StateConfiguration || server.State() != StateConfiguration {
		t.Fatalf("after reconfigure: client=%v server=%v", client.State(), server.State())
	}
	exchange(t, server, client, Clientbound, FinishConfiguration{})
	exchange(t, client, server, Serverbound, AcknowledgeFinishConfiguration{})
	if client.State() != StatePlay {
		t.Fatalf("after second finish: %v", client.State())
	}
}

func TestSessionEncryptionRefused(t *testing.T) {
	s := NewSession()
	if err := s.EnableEncryption([]byte("sixteen byte key")); !errors.Is(err, ErrEncryptionUnsupported) {
		t.Fatalf("got %v", err)
	}
}

func TestSessionCompressionDisarm(t *testing.T) {
	s := NewSession()
	s.Observe(Handshake{NextState: NextLogin})
	s.Observe(SetCompression{Threshold: 128})
	if s.Threshold() != 128 {
		t.Fatalf("threshold: %d", s.Threshold())
	}
	s.Observe(SetCompression{Threshold: -1})
	if s.Threshold() != CompressionOff {
		t.Fatalf("disarm: %d", s.Threshold())
	}
}
