package controller

import (
	"context"
	"sync"
	"testing"
	"time"

	"viscabridge/internal/viscacmd"
)

type memConn struct {
	mu     sync.Mutex
	frames [][]byte
}

func (m *memConn) Write(frame []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, append([]byte(nil), frame...))
	return nil
}
func (m *memConn) Close() error { return nil }

func (m *memConn) last() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.frames) == 0 {
		return nil
	}
	return m.frames[len(m.frames)-1]
}

func TestControllerRoutesAckAndComplete(t *testing.T) {
	ctl := New(nil)
	conn := &memConn{}
	ctl.AddIPCamera(1, conn)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctl.Run(ctx)

	done := make(chan struct{})
	cmd := viscacmd.CmdPower(1, true)
	cmd.Callbacks.OnComplete = func(any) { close(done) }

	if err := ctl.SendToCamera(1, cmd); err != nil {
		t.Fatal(err)
	}
	if conn.last() == nil {
		t.Fatal("expected a frame written to the camera's connection")
	}

	// Simulate the camera replying ACK then COMPLETE on socket 1.
	ctl.OnFrame([]byte{0x91, 0x41, 0xFF})
	ctl.OnFrame([]byte{0x91, 0x51, 0xFF})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for OnComplete")
	}
}

func TestControllerUnknownCameraErrors(t *testing.T) {
	ctl := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ctl.Run(ctx)

	if err := ctl.SendToCamera(5, viscacmd.CmdPower(5, true)); err == nil {
		t.Fatal("expected error sending to a camera with no configured transport")
	}
}
