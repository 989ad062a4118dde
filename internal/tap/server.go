// Package tap exposes a live websocket feed of captured traffic so a
// session can be watched while it runs.
package tap

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"craftwire.dev/internal/capture"
	"craftwire.dev/packet"
)

// Hello is the first message every subscriber receives.
type Hello struct {
	Type            string `json:"type"`
	ProtocolVersion int32  `json:"protocol_version"`
	ProtocolName    string `json:"protocol_name"`
}

// Server fans captured records out to websocket subscribers. Slow
// subscribers drop records rather than stall the proxy.
type Server struct {
	log      *log.Logger
	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu   sync.Mutex
	subs map[uint64]chan []byte
}

func NewServer(logger *log.Logger) *Server {
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		subs: make(map[uint64]chan []byte),
	}
}

// Publish sends a record to every subscriber.
func (s *Server) Publish(rec capture.Record) {
	b, err := json.Marshal(rec)
	if err != nil {
		s.log.Printf("[tap] marshal record: %v", err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		select {
		case ch <- b:
		default:
			s.log.Printf("[tap] subscriber %d lagging, dropped record", id)
		}
	}
}

// Subscribers reports the live subscriber count.
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Handler upgrades loopback requests and streams records until the
// peer goes away.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !isLoopbackRemote(r.RemoteAddr) {
			http.Error(rw, "forbidden", http.StatusForbidden)
			return
		}

		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		hello, _ := json.Marshal(Hello{
			Type:            "HELLO",
			ProtocolVersion: packet.ProtocolVersion,
			ProtocolName:    packet.ProtocolName,
		})
		if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
			return
		}

		id := s.nextID.Add(1)
		out := make(chan []byte, 4096)
		s.mu.Lock()
		s.subs[id] = out
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		}()
		s.log.Printf("[tap] subscriber %d connected from %s", id, r.RemoteAddr)

		// Reader goroutine: the feed is one-way, so reads only serve
		// to notice the close.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

func isLoopbackRemote(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	host = strings.Trim(host, "[]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
