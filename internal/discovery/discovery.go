// Package discovery finds VISCA-over-IP cameras on the LAN by
// multicasting a probe and collecting replies, the way the teacher's
// WS-Discovery listener finds ONVIF devices — same multicast-join and
// packet-loop shape, aimed at a VISCA-flavored probe/reply instead of
// SOAP ProbeMatches.
package discovery

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/ipv4"
)

// ProbeGroup/ProbePort are the multicast rendezvous a VISCA-over-IP
// camera's discovery responder is expected to listen on. There is no
// single industry-standard address for this the way WS-Discovery has
// 239.255.255.250:3702, so the gateway picks one in the
// administratively-scoped block and documents it for camera-side
// integrators.
var (
	ProbeGroup = net.IPv4(239, 255, 90, 51)
	ProbePort  = 52382
)

const probeMagic = "VISCABRIDGE-PROBE-1"

// Candidate is one camera that answered a probe.
type Candidate struct {
	SessionID string // fresh UUID stamped on each observed reply; identifies neither the discovery run nor the camera
	Addr      string // host:port the reply came from
	Reply     []byte
	SeenAt    time.Time
}

// Sink receives discovered candidates; internal/registry implements this
// to fold them into the topology table.
type Sink interface {
	Observe(Candidate)
}

// Config selects the network interface the multicast probe joins.
type Config struct {
	LANIfName string
	PublicIP  string // unused by the probe itself, kept for parity with the teacher's WS-Discovery config surface
}

// Run joins the probe group on cfg.LANIfName, sends a probe every
// interval, and forwards every reply to sink until ctx is cancelled.
func Run(ctx context.Context, cfg Config, interval time.Duration, sink Sink) error {
	pc, err := net.ListenPacket("udp4", fmt.Sprintf("0.0.0.0:%d", ProbePort))
	if err != nil {
		return fmt.Errorf("discovery: listen: %w", err)
	}
	defer pc.Close()

	p := ipv4.NewPacketConn(pc)
	if ifi, err := net.InterfaceByName(cfg.LANIfName); err != nil {
		log.Printf("[discovery] cannot find iface %s, probing without multicast join: %v", cfg.LANIfName, err)
	} else {
		if err := p.JoinGroup(ifi, &net.UDPAddr{IP: ProbeGroup}); err != nil {
			log.Printf("[discovery] JoinGroup on %s failed: %v", cfg.LANIfName, err)
		} else {
			log.Printf("[discovery] joined %s on %s", ProbeGroup, cfg.LANIfName)
		}
		_ = p.SetMulticastInterface(ifi)
		_ = p.SetMulticastTTL(2)
	}

	go probeLoop(ctx, p, interval)
	readLoop(ctx, pc, sink)
	return nil
}

func probeLoop(ctx context.Context, p *ipv4.PacketConn, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	dst := &net.UDPAddr{IP: ProbeGroup, Port: ProbePort}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			msg := fmt.Sprintf("%s %s", probeMagic, uuid.NewString())
			if _, err := p.WriteTo([]byte(msg), nil, dst); err != nil {
				log.Printf("[discovery] probe send failed: %v", err)
			}
		}
	}
}

func readLoop(ctx context.Context, pc net.PacketConn, sink Sink) {
	buf := make([]byte, 512)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		pc.SetReadDeadline(time.Now().Add(1 * time.Second))
		n, addr, err := pc.ReadFrom(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			log.Printf("[discovery] read error: %v", err)
			continue
		}
		reply := append([]byte(nil), buf[:n]...)
		if isOwnProbe(reply) {
			continue
		}
		sink.Observe(Candidate{
			SessionID: uuid.NewString(),
			Addr:      addr.String(),
			Reply:     reply,
			SeenAt:    time.Now(),
		})
	}
}

func isOwnProbe(reply []byte) bool {
	return len(reply) >= len(probeMagic) && string(reply[:len(probeMagic)]) == probeMagic
}
