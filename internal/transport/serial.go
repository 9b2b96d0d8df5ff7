package transport

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"go.bug.st/serial"
)

// DefaultBaudRate is the VISCA-over-RS232 default from power-on (§4.5,
// §6). Deployments that have re-addressed their chain to run faster
// should set Baud explicitly.
const DefaultBaudRate = 9600

// SerialConfig configures one physical daisy-chain bus.
type SerialConfig struct {
	Path string
	Baud int
}

// SerialConn is a shared RS-232/RS-422 bus carrying frames for every
// camera on the daisy chain, multiplexed by header byte (§4.5, §4.6).
// It never reconnects on its own: a read or write failure fires
// ErrorHandler once and the connection is done.
type SerialConn struct {
	port serial.Port

	mu     sync.Mutex
	closed bool

	onFrame FrameHandler
	onError ErrorHandler
}

// OpenSerial opens the bus at 8-N-1 and starts the background reader that
// splits the incoming byte stream on the VISCA 0xFF terminator (§4.2),
// delivering each complete frame to onFrame.
func OpenSerial(cfg SerialConfig, onFrame FrameHandler, onError ErrorHandler) (*SerialConn, error) {
	baud := cfg.Baud
	if baud == 0 {
		baud = DefaultBaudRate
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Path, mode)
	if err != nil {
		return nil, fmt.Errorf("transport: open serial port %s: %w", cfg.Path, err)
	}
	sc := &SerialConn{port: port, onFrame: onFrame, onError: onError}
	go sc.readLoop()
	return sc, nil
}

func (sc *SerialConn) readLoop() {
	var pending []byte
	buf := make([]byte, 256)
	for {
		n, err := sc.port.Read(buf)
		if err != nil {
			if err == io.EOF {
				continue
			}
			sc.fail(fmt.Errorf("transport: serial read: %w", err))
			return
		}
		if n == 0 {
			continue
		}
		pending = append(pending, buf[:n]...)
		var frames [][]byte
		frames, pending = splitFrames(pending)
		for _, frame := range frames {
			if sc.onFrame != nil {
				sc.onFrame(frame)
			}
		}
	}
}

// splitFrames peels complete, terminator-included frames off the front of
// pending, returning them in arrival order plus whatever partial frame is
// left over for the next read.
func splitFrames(pending []byte) (frames [][]byte, remainder []byte) {
	for {
		idx := bytes.IndexByte(pending, 0xFF)
		if idx < 0 {
			return frames, pending
		}
		frames = append(frames, append([]byte(nil), pending[:idx+1]...))
		pending = pending[idx+1:]
	}
}

func (sc *SerialConn) fail(err error) {
	sc.mu.Lock()
	already := sc.closed
	sc.closed = true
	sc.mu.Unlock()
	if already {
		return
	}
	if sc.onError != nil {
		sc.onError(err)
	}
}

// Write puts one already-terminated frame on the bus.
func (sc *SerialConn) Write(frame []byte) error {
	sc.mu.Lock()
	closed := sc.closed
	sc.mu.Unlock()
	if closed {
		return ErrClosed
	}
	_, err := sc.port.Write(frame)
	if err != nil {
		sc.fail(fmt.Errorf("transport: serial write: %w", err))
		return err
	}
	return nil
}

// Close releases the underlying port. Idempotent.
func (sc *SerialConn) Close() error {
	sc.mu.Lock()
	if sc.closed {
		sc.mu.Unlock()
		return nil
	}
	sc.closed = true
	sc.mu.Unlock()
	return sc.port.Close()
}
