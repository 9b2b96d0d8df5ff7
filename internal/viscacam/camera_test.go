package viscacam

import (
	"errors"
	"testing"
	"time"

	"viscabridge/internal/viscacmd"
	"viscabridge/internal/viscawire"
	"viscabridge/internal/visgwerr"
)

type fakeWriter struct {
	frames [][]byte
	fail   bool
}

func (w *fakeWriter) Write(frame []byte) error {
	if w.fail {
		return errors.New("write failed")
	}
	w.frames = append(w.frames, append([]byte(nil), frame...))
	return nil
}

func newCmd(name string, socket int) *viscacmd.Command {
	return &viscacmd.Command{
		Recipient: 1,
		MsgType:   viscawire.Command,
		Datatype:  viscawire.Camera,
		HasType:   true,
		Payload:   []byte{0x02},
		Name:      name,
	}
}

// Scenario 1 (§8): zoom-in ACK then COMPLETE resolves the command exactly
// once, in order.
func TestCameraAckThenComplete(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	var acked, completed bool
	cmd := newCmd("zoom-direct", 0)
	cmd.Callbacks.OnAck = func() { acked = true }
	cmd.Callbacks.OnComplete = func(any) { completed = true }

	if err := cam.Submit(cmd); err != nil {
		t.Fatal(err)
	}
	if len(w.frames) != 1 {
		t.Fatalf("expected 1 frame written, got %d", len(w.frames))
	}
	if err := cam.OnAck(1); err != nil {
		t.Fatal(err)
	}
	if !acked {
		t.Fatal("expected OnAck callback to fire")
	}
	if err := cam.OnComplete(1, nil); err != nil {
		t.Fatal(err)
	}
	if !completed {
		t.Fatal("expected OnComplete callback to fire")
	}
	if cam.PendingCount() != 0 {
		t.Fatalf("expected 0 pending after completion, got %d", cam.PendingCount())
	}
}

// P5: three commands submitted back to back, the third while both slots
// are busy, resolve their ACKs in FIFO submission order.
func TestCameraFIFOAdmission(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	var order []string
	mk := func(name string) *viscacmd.Command {
		c := newCmd(name, 0)
		c.Callbacks.OnAck = func() { order = append(order, name) }
		return c
	}

	first := mk("first")
	second := mk("second")
	third := mk("third")

	for _, c := range []*viscacmd.Command{first, second, third} {
		if err := cam.Submit(c); err != nil {
			t.Fatal(err)
		}
	}
	// Slots 1 and 2 are occupied by first and second; third sits in
	// cmd_queue until a slot frees.
	if len(w.frames) != 2 {
		t.Fatalf("expected 2 frames written immediately, got %d", len(w.frames))
	}

	if err := cam.OnAck(1); err != nil {
		t.Fatal(err)
	}
	if err := cam.OnAck(2); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected ack order: %v", order)
	}

	// Free slot 1 by completing "first"; third should then be admitted.
	if err := cam.OnComplete(1, nil); err != nil {
		t.Fatal(err)
	}
	if len(w.frames) != 3 {
		t.Fatalf("expected third command dispatched after slot freed, got %d frames", len(w.frames))
	}
	if err := cam.OnAck(1); err != nil {
		t.Fatal(err)
	}
	if len(order) != 3 || order[2] != "third" {
		t.Fatalf("unexpected ack order after requeue: %v", order)
	}
}

// P6: exactly one terminal callback fires per command, never both
// OnComplete and OnError.
func TestCameraOneTerminalCallback(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	fires := 0
	cmd := newCmd("gain", 0)
	cmd.Callbacks.OnComplete = func(any) { fires++ }
	cmd.Callbacks.OnError = func(error) { fires++ }

	if err := cam.Submit(cmd); err != nil {
		t.Fatal(err)
	}
	if err := cam.OnAck(1); err != nil {
		t.Fatal(err)
	}
	if err := cam.OnComplete(1, nil); err != nil {
		t.Fatal(err)
	}
	// A second COMPLETE on the same, now-cleared socket must not refire.
	if err := cam.OnComplete(1, nil); err == nil {
		t.Fatal("expected error resolving an already-cleared slot")
	}
	if fires != 1 {
		t.Fatalf("expected exactly one terminal callback, got %d", fires)
	}
}

// P7: sent_awaiting_ack plus occupied slots never exceeds 2 entries for a
// camera with only two command slots.
func TestCameraPendingCountBound(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	for i := 0; i < 5; i++ {
		if err := cam.Submit(newCmd("cmd", 0)); err != nil {
			t.Fatal(err)
		}
		if cam.PendingCount() > 2 {
			t.Fatalf("pending count exceeded slot bound: %d", cam.PendingCount())
		}
	}
}

// Scenario: a command stuck in sent_awaiting_ack past the GC ceiling
// resolves with TIMEOUT exactly once.
func TestCameraGCStaleTimesOut(t *testing.T) {
	w := &fakeWriter{}
	now := time.Unix(0, 0)
	cam := New(1, w, func() time.Time { return now })

	var gotErr error
	cmd := newCmd("stuck", 0)
	cmd.Callbacks.OnError = func(err error) { gotErr = err }
	if err := cam.Submit(cmd); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Second)
	cam.GCStale()

	if gotErr == nil {
		t.Fatal("expected timeout error")
	}
	var ve *visgwerr.Error
	if !errors.As(gotErr, &ve) || ve.Code != visgwerr.Timeout {
		t.Fatalf("expected TIMEOUT error, got %v", gotErr)
	}
	if cam.PendingCount() != 0 {
		t.Fatalf("expected stale entry evicted, pending=%d", cam.PendingCount())
	}
}

// Scenario 6-ish: BUFFER_FULL reported on socket 0 resolves the head of
// sent_awaiting_ack, not a bound slot.
func TestCameraBufferFullOnSocketZeroHitsHead(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	var gotErr error
	cmd := newCmd("overflowed", 0)
	cmd.Callbacks.OnError = func(err error) { gotErr = err }
	if err := cam.Submit(cmd); err != nil {
		t.Fatal(err)
	}

	if err := cam.OnError(0, byte(viscawire.ErrBufferFull)); err != nil {
		t.Fatal(err)
	}
	var ve *visgwerr.Error
	if !errors.As(gotErr, &ve) || ve.Code != visgwerr.BufferFull {
		t.Fatalf("expected BUFFER_FULL error, got %v", gotErr)
	}
}

func TestCameraIFClearCancelsEverything(t *testing.T) {
	w := &fakeWriter{}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	var errs int
	for i := 0; i < 3; i++ {
		c := newCmd("queued", 0)
		c.Callbacks.OnError = func(error) { errs++ }
		if err := cam.Submit(c); err != nil {
			t.Fatal(err)
		}
	}
	cam.IFClear()
	if errs != 3 {
		t.Fatalf("expected 3 cancellations, got %d", errs)
	}
	if cam.PendingCount() != 0 {
		t.Fatalf("expected clean slate after if-clear, got pending=%d", cam.PendingCount())
	}
}

func TestCameraWriteFailureSurfacesTransportError(t *testing.T) {
	w := &fakeWriter{fail: true}
	cam := New(1, w, func() time.Time { return time.Unix(0, 0) })

	var gotErr error
	cmd := newCmd("doomed", 0)
	cmd.Callbacks.OnError = func(err error) { gotErr = err }
	if err := cam.Submit(cmd); err == nil {
		t.Fatal("expected submit to surface the write error")
	}
	var ve *visgwerr.Error
	if !errors.As(gotErr, &ve) || ve.Code != visgwerr.Transport {
		t.Fatalf("expected TRANSPORT error, got %v", gotErr)
	}
}
