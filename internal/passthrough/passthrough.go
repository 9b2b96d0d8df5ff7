// Package passthrough gives external VISCA-speaking software (a NVR, a
// third-party PTZ controller) a raw path straight to a physical camera,
// bypassing the queueing engine entirely: one UDP endpoint per camera at
// basePort+address, rewriting every inbound datagram's header to
// source=0/recipient=address before writing it to the camera bus, and
// mirroring ACK/COMPLETE/ERROR replies back to whichever client last sent
// a frame. It is a bridge, not a client of viscacam — the controller's own
// automation queue and a passthrough session can both be talking to the
// same camera at once, exactly as a physical VISCA bus allows.
package passthrough

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"viscabridge/internal/viscacmd"
)

// CameraWriter is the narrow surface a passthrough endpoint needs to push
// a rewritten frame onto the camera's bus.
type CameraWriter interface {
	Write(frame []byte) error
}

// Endpoint bridges one UDP socket to one camera address.
type Endpoint struct {
	address int
	conn    *net.UDPConn
	camera  CameraWriter

	mu         sync.Mutex
	lastClient *net.UDPAddr
}

// Listen opens the passthrough socket for one camera and returns the
// Endpoint. Call Serve in its own goroutine to start relaying.
func Listen(address int, listenAddr string, camera CameraWriter) (*Endpoint, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("passthrough: resolve %s: %w", listenAddr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("passthrough: listen %s: %w", listenAddr, err)
	}
	return &Endpoint{address: address, conn: conn, camera: camera}, nil
}

// Serve reads client datagrams until ctx is cancelled, rewriting each to
// the canonical source=0/recipient=address form before forwarding it to
// the camera bus.
func (e *Endpoint) Serve(ctx context.Context) {
	log.Printf("[passthrough] camera %d bridged at %s", e.address, e.conn.LocalAddr())
	buf := make([]byte, 32)
	for {
		select {
		case <-ctx.Done():
			e.conn.Close()
			return
		default:
		}
		e.conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, clientAddr, err := e.conn.ReadFromUDP(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			log.Printf("[passthrough] camera %d: read error: %v", e.address, err)
			continue
		}
		if n == 0 {
			continue
		}
		e.mu.Lock()
		e.lastClient = clientAddr
		e.mu.Unlock()

		frame, err := rewriteHeader(buf[:n], e.address)
		if err != nil {
			log.Printf("[passthrough] camera %d: dropping malformed client frame: %v", e.address, err)
			continue
		}
		if err := e.camera.Write(frame); err != nil {
			log.Printf("[passthrough] camera %d: write to bus failed: %v", e.address, err)
		}
	}
}

// rewriteHeader re-stamps a client-supplied frame's header to
// source=0/recipient=address, preserving message type, socket, datatype
// and payload exactly, so a client that mis-addresses itself doesn't
// desync the camera's socket bookkeeping.
func rewriteHeader(frame []byte, address int) ([]byte, error) {
	cmd, err := viscacmd.Parse(frame)
	if err != nil {
		return nil, err
	}
	cmd.Source = 0
	cmd.Recipient = address
	cmd.Broadcast = false
	return cmd.Serialize()
}

// OnCameraFrame is registered as a controller tap for this endpoint's
// address (§C6/§C7): every reply the camera sends for this address is
// mirrored to whichever client most recently sent it a frame. Replies
// with no known client (nothing has bridged through yet) are dropped.
func (e *Endpoint) OnCameraFrame(frame []byte) {
	e.mu.Lock()
	client := e.lastClient
	e.mu.Unlock()
	if client == nil {
		return
	}
	if _, err := e.conn.WriteToUDP(frame, client); err != nil {
		log.Printf("[passthrough] camera %d: reply to %s failed: %v", e.address, client, err)
	}
}

// Close releases the passthrough socket.
func (e *Endpoint) Close() error { return e.conn.Close() }
