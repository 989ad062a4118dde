// mcproxy sits between a client and a server, decoding the traffic
// that crosses it. Decoded packets drive a shared session state
// machine and can be captured to disk, streamed over a websocket tap,
// and enriched with resolved player profiles. Frames the catalogs do
// not know are forwarded untouched.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"craftwire.dev/internal/capture"
	"craftwire.dev/internal/config"
	"craftwire.dev/internal/tap"
	"craftwire.dev/packet"
	"craftwire.dev/profile"
	"craftwire.dev/wire"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to proxy.yaml (empty for defaults)")
		listen     = flag.String("listen", "", "override the configured listen address")
		upstream   = flag.String("upstream", "", "override the configured upstream address")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[mcproxy] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if *upstream != "" {
		cfg.Upstream = *upstream
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	p := &proxy{cfg: cfg, log: logger}

	if cfg.Capture.Enabled {
		p.capture = capture.NewWriter(cfg.Capture.Dir, cfg.Capture.Prefix)
		defer p.capture.Close()
		logger.Printf("capturing to %s", cfg.Capture.Dir)
	}
	if cfg.Tap.Enabled {
		p.tap = tap.NewServer(logger)
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/v1/tap", p.tap.Handler())
			logger.Printf("tap listening on ws://%s/v1/tap", cfg.Tap.Listen)
			if err := http.ListenAndServe(cfg.Tap.Listen, mux); err != nil {
				logger.Printf("tap server: %v", err)
			}
		}()
	}
	if cfg.Profiles.Enabled {
		cache, err := profile.OpenCache(cfg.Profiles.CachePath, cfg.CacheTTL())
		if err != nil {
			fmt.Fprintln(os.Stderr, "profile cache:", err)
			os.Exit(1)
		}
		defer cache.Close()
		p.profiles = profile.NewClient(cfg.Profiles.APIBase, cfg.Profiles.SessionBase, cfg.DialTimeout())
		p.profileCache = cache
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "listen:", err)
		os.Exit(1)
	}
	logger.Printf("listening on %s, forwarding to %s", cfg.Listen, cfg.Upstream)

	for {
		conn, err := ln.Accept()
		if err != nil {
			logger.Printf("accept: %v", err)
			continue
		}
		go p.handle(conn)
	}
}

type proxy struct {
	cfg config.Config
	log *log.Logger

	capture      *capture.Writer
	tap          *tap.Server
	profiles     *profile.Client
	profileCache *profile.Cache
}

// conn couples the two legs of one proxied connection with the shared
// session they advance.
type conn struct {
	p    *proxy
	sess *packet.Session
	mu   sync.Mutex
}

func (p *proxy) handle(client net.Conn) {
	defer client.Close()

	server, err := net.DialTimeout("tcp", p.cfg.Upstream, p.cfg.DialTimeout())
	if err != nil {
		p.log.Printf("dial upstream: %v", err)
		return
	}
	defer server.Close()
	p.log.Printf("%s <-> %s", client.RemoteAddr(), p.cfg.Upstream)

	c := &conn{p: p, sess: packet.NewSession()}
	done := make(chan error, 2)
	go func() { done <- c.pump(server, client, packet.Serverbound) }()
	go func() { done <- c.pump(client, server, packet.Clientbound) }()

	err = <-done
	// Closing both legs unblocks the other pump.
	client.Close()
	server.Close()
	<-done

	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
		p.log.Printf("%s: %v", client.RemoteAddr(), err)
	}
}

// pump forwards frames from src to dst for one direction. Bodies
// travel unchanged; decoding only feeds observation.
func (c *conn) pump(dst, src net.Conn, d packet.Direction) error {
	for {
		if err := src.SetReadDeadline(time.Now().Add(c.p.cfg.IdleTimeout())); err != nil {
			return err
		}

		c.mu.Lock()
		state := c.sess.State()
		threshold := c.sess.Threshold()
		c.mu.Unlock()

		body, err := packet.ReadFrame(src, threshold)
		if err != nil {
			return err
		}

		pkt, err := packet.Decode(state, d, body)
		if err != nil {
			var unknown *packet.UnknownIDError
			if !errors.As(err, &unknown) {
				return fmt.Errorf("%s decode: %w", d, err)
			}
			// Outside the catalog: pass it along untouched.
		}

		frame, err := packet.AppendFrame(nil, body, threshold)
		if err != nil {
			return err
		}
		if _, err := dst.Write(frame); err != nil {
			return err
		}

		if pkt != nil {
			c.mu.Lock()
			c.sess.Observe(pkt)
			c.mu.Unlock()
			c.p.observe(state, d, pkt)
		}
		c.p.record(state, d, body)
	}
}

// record feeds capture and the tap.
func (p *proxy) record(st packet.State, d packet.Direction, body []byte) {
	if p.capture != nil {
		if err := p.capture.WritePacket(st, d, body); err != nil {
			p.log.Printf("capture: %v", err)
		}
	}
	if p.tap != nil {
		id, _, err := wire.DecodeVarInt(body)
		if err != nil {
			return
		}
		p.tap.Publish(capture.Record{
			Time:      time.Now().UTC(),
			Direction: d.String(),
			State:     st.String(),
			PacketID:  id,
			Size:      len(body),
			Body:      body,
		})
	}
}

// observe logs the interesting milestones and resolves profiles.
func (p *proxy) observe(st packet.State, d packet.Direction, pkt packet.Packet) {
	switch t := pkt.(type) {
	case packet.Handshake:
		p.log.Printf("handshake: protocol %d, next %s", t.ProtocolVersion, t.NextState)
	case packet.LoginStart:
		p.log.Printf("login start: %s", t.Name)
		if p.profiles != nil {
			go p.resolveProfile(t.Name)
		}
	case packet.LoginSuccess:
		p.log.Printf("login success: %s (%s)", t.Username, t.PlayerID)
	case packet.SetCompression:
		p.log.Printf("compression threshold: %d", t.Threshold)
	case packet.LoginDisconnect:
		p.log.Printf("disconnect during login: %s", t.Reason)
	case packet.PlayDisconnect:
		p.log.Printf("disconnect during play: %s", t.Reason)
	}
}

func (p *proxy) resolveProfile(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.DialTimeout())
	defer cancel()

	if prof, ok, err := p.profileCache.GetByName(ctx, name); err == nil && ok {
		p.log.Printf("profile (cached): %s = %s", prof.Name, prof.ID)
		return
	}
	prof, err := p.profiles.Lookup(ctx, name)
	if err != nil {
		p.log.Printf("profile lookup %q: %v", name, err)
		return
	}
	full, err := p.profiles.Fetch(ctx, prof.ID)
	if err != nil {
		p.log.Printf("profile fetch %q: %v", name, err)
		return
	}
	if err := p.profileCache.Put(ctx, full); err != nil {
		p.log.Printf("profile cache put: %v", err)
	}
	p.log.Printf("profile: %s = %s (%d properties)", full.Name, full.ID, len(full.Properties))
}
