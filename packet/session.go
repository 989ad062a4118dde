package packet

import "io"

// Session tracks one connection's protocol state and compression
// threshold, advancing them as the packets that switch state cross it.
type Session struct {
	state     State
	threshold int32
}

// NewSession starts a connection in the handshake state with
// compression off.
func NewSession() *Session {
	return &Session{state: StateHandshake, threshold: CompressionOff}
}

// State reports the catalog the session currently decodes under.
func (s *Session) State() State { return s.state }

// Threshold reports the armed compression threshold, or
// CompressionOff.
func (s *Session) Threshold() int32 { return s.threshold }

// EnableEncryption is the extension point the login flow reaches
// after a key exchange. The codec stops at the frame layer, so it
// always refuses.
func (s *Session) EnableEncryption(sharedSecret []byte) error {
	return ErrEncryptionUnsupported
}

// ReadPacket reads one frame arriving in the given direction and
// decodes it under the current state, applying any transition it
// implies.
func (s *Session) ReadPacket(r io.Reader, d Direction) (Packet, error) {
	body, err := ReadFrame(r, s.threshold)
	if err != nil {
		return nil, err
	}
	p, err := Decode(s.state, d, body)
	if err != nil {
		return nil, err
	}
	s.Observe(p)
	return p, nil
}

// WritePacket encodes and frames the packet under the current
// threshold, then applies any transition it implies. Transitions
// land after the write, so a SetCompression still travels
// uncompressed itself.
func (s *Session) WritePacket(w io.Writer, p Packet) error {
	body, err := Marshal(p)
	if err != nil {
		return err
	}
	frame, err := AppendFrame(nil, body, s.threshold)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return err
	}
	s.Observe(p)
	return nil
}

// Observe applies the state transition a packet implies, if any.
// Transitions are idempotent assignments, so a proxy may feed both
// legs of the same exchange through one session.
func (s *Session) Observe(p Packet) {
	switch t := p.(type) {
	case Handshake:
		if t.NextState == NextStatus {
			s.state = StateStatus
		} else {
			s.state = StateLogin
		}
	case SetCompression:
		if t.Threshold < 0 {
			s.threshold = CompressionOff
		} else {
			s.threshold = t.Threshold
		}
	case LoginAcknowledged:
		s.state = StateConfiguration
	case AcknowledgeFinishConfiguration:
		s.state = StatePlay
	case AcknowledgeConfiguration:
		s.state = StateConfiguration
	}
}
