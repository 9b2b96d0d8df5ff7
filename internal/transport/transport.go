// Package transport implements the two physical carriers a VISCA frame
// can travel over (§4.5): a shared RS-232/RS-422 serial bus addressing
// multiple daisy-chained cameras by header byte, and VISCA-over-IP, one
// UDP socket per camera with a 1:1 frame-per-datagram mapping. Neither
// carrier reconnects automatically on failure — the owning controller
// decides whether and when to retry.
package transport

import "fmt"

// FrameHandler receives one complete, terminator-included VISCA frame as
// it arrives off the wire.
type FrameHandler func(frame []byte)

// ErrorHandler is invoked once, on the transition into a closed/failed
// state. After it fires, Conn.Write always errors.
type ErrorHandler func(err error)

// Conn is the narrow surface the rest of the engine needs from a
// transport: put a frame on the wire, and tear the carrier down. Frame
// delivery and error notification are both push-based, registered at
// construction time, so Conn itself never blocks a caller waiting for
// input.
type Conn interface {
	Write(frame []byte) error
	Close() error
}

// ErrClosed is returned by Write after Close or a terminal transport
// error.
var ErrClosed = fmt.Errorf("transport: connection closed")
