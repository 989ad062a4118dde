// mcping queries a server's status endpoint and measures its latency.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"craftwire.dev/packet"
)

func main() {
	var (
		addr     = flag.String("addr", "127.0.0.1:25565", "server address (host:port)")
		protocol = flag.Int("protocol", packet.ProtocolVersion, "protocol version to claim")
		timeout  = flag.Duration("timeout", 10*time.Second, "overall budget for the exchange")
		asJSON   = flag.Bool("json", false, "print the raw status document")
	)
	flag.Parse()

	host, portStr, err := net.SplitHostPort(*addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad address:", err)
		os.Exit(2)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad port:", err)
		os.Exit(2)
	}

	doc, rtt, err := ping(*addr, host, uint16(port), int32(*protocol), *timeout)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ping:", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "encode:", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	fmt.Printf("%s (protocol %d)\n", doc.Version.Name, doc.Version.Protocol)
	fmt.Printf("players: %d/%d\n", doc.Players.Online, doc.Players.Max)
	for _, sample := range doc.Players.Sample {
		fmt.Printf("  %s (%s)\n", sample.Name, sample.ID)
	}
	if doc.Description != nil {
		fmt.Printf("motd: %s\n", doc.Description.Flatten())
	}
	fmt.Printf("latency: %s\n", rtt.Round(time.Millisecond))
}

func ping(addr, host string, port uint16, protocol int32, timeout time.Duration) (packet.StatusDocument, time.Duration, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return packet.StatusDocument{}, 0, err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return packet.StatusDocument{}, 0, err
	}

	sess := packet.NewSession()
	err = sess.WritePacket(conn, packet.Handshake{
		ProtocolVersion: protocol,
		ServerAddress:   host,
		ServerPort:      port,
		NextState:       packet.NextStatus,
	})
	if err != nil {
		return packet.StatusDocument{}, 0, fmt.Errorf("handshake: %w", err)
	}
	if err := sess.WritePacket(conn, packet.StatusRequest{}); err != nil {
		return packet.StatusDocument{}, 0, fmt.Errorf("status request: %w", err)
	}

	p, err := sess.ReadPacket(conn, packet.Clientbound)
	if err != nil {
		return packet.StatusDocument{}, 0, fmt.Errorf("status response: %w", err)
	}
	resp, ok := p.(packet.StatusResponse)
	if !ok {
		return packet.StatusDocument{}, 0, fmt.Errorf("unexpected %T before status response", p)
	}

	start := time.Now()
	payload := start.UnixMilli()
	if err := sess.WritePacket(conn, packet.PingRequest{Payload: payload}); err != nil {
		return packet.StatusDocument{}, 0, fmt.Errorf("ping request: %w", err)
	}
	p, err = sess.ReadPacket(conn, packet.Clientbound)
	if err != nil {
		return packet.StatusDocument{}, 0, fmt.Errorf("ping response: %w", err)
	}
	pong, ok := p.(packet.PingResponse)
	if !ok {
		return packet.StatusDocument{}, 0, fmt.Errorf("unexpected %T before ping response", p)
	}
	if pong.Payload != payload {
		return packet.StatusDocument{}, 0, fmt.Errorf("ping payload mismatch: sent %d got %d", payload, pong.Payload)
	}
	return resp.Status, time.Since(start), nil
}
