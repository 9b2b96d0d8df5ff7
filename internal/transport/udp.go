package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// DefaultVISCAOverIPPort is the camera-side UDP port used by most
// VISCA-over-IP implementations (§4.5, §6).
const DefaultVISCAOverIPPort = 52381

// UDPConfig configures one VISCA-over-IP camera's transport.
type UDPConfig struct {
	Addr string // host:port of the camera
}

// UDPConn is a dialed UDP socket dedicated to a single IP camera: one
// datagram carries exactly one VISCA frame, in either direction (§4.5).
// Like SerialConn, it never redials on its own.
type UDPConn struct {
	conn *net.UDPConn

	mu     sync.Mutex
	closed bool

	onError ErrorHandler
}

// DialUDPCamera opens the socket and starts the background reader that
// treats each inbound datagram as one complete frame.
func DialUDPCamera(ctx context.Context, cfg UDPConfig, onFrame FrameHandler, onError ErrorHandler) (*UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp", cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("transport: resolve %s: %w", cfg.Addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("transport: dial %s: %w", cfg.Addr, err)
	}
	uc := &UDPConn{conn: conn, onError: onError}
	go uc.readLoop(ctx, onFrame)
	return uc, nil
}

func (uc *UDPConn) readLoop(ctx context.Context, onFrame FrameHandler) {
	buf := make([]byte, 32)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		uc.conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		n, err := uc.conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			uc.fail(fmt.Errorf("transport: udp read from %s: %w", uc.conn.RemoteAddr(), err))
			return
		}
		if n == 0 {
			continue
		}
		frame := append([]byte(nil), buf[:n]...)
		if onFrame != nil {
			onFrame(frame)
		}
	}
}

func (uc *UDPConn) fail(err error) {
	uc.mu.Lock()
	already := uc.closed
	uc.closed = true
	uc.mu.Unlock()
	if already {
		return
	}
	if uc.onError != nil {
		uc.onError(err)
	}
}

// Write sends one frame as a single datagram.
func (uc *UDPConn) Write(frame []byte) error {
	uc.mu.Lock()
	closed := uc.closed
	uc.mu.Unlock()
	if closed {
		return ErrClosed
	}
	_, err := uc.conn.Write(frame)
	if err != nil {
		uc.fail(fmt.Errorf("transport: udp write to %s: %w", uc.conn.RemoteAddr(), err))
		return err
	}
	return nil
}

// Close releases the socket. Idempotent.
func (uc *UDPConn) Close() error {
	uc.mu.Lock()
	if uc.closed {
		uc.mu.Unlock()
		return nil
	}
	uc.closed = true
	uc.mu.Unlock()
	return uc.conn.Close()
}
