package hub

import (
	"context"
	"testing"
	"time"
)

func TestEnqueueThenLongPollDrains(t *testing.T) {
	h := New()
	h.Enqueue(1, NewCommand("power", nil))
	h.Enqueue(1, NewCommand("zoom-stop", nil))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cmds := h.LongPoll(ctx, 1)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Type != "power" || cmds[1].Type != "zoom-stop" {
		t.Fatalf("unexpected command order: %+v", cmds)
	}
}

func TestLongPollTimesOutWhenEmpty(t *testing.T) {
	h := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if cmds := h.LongPoll(ctx, 5); cmds != nil {
		t.Fatalf("expected nil on timeout, got %+v", cmds)
	}
}

func TestEnqueueDropsOnFullQueue(t *testing.T) {
	h := New()
	for i := 0; i < 100; i++ {
		h.Enqueue(2, NewCommand("noop", nil))
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cmds := h.LongPoll(ctx, 2)
	if len(cmds) != 32 {
		t.Fatalf("expected LongPoll to cap a single drain at 32, got %d", len(cmds))
	}
}

func TestDifferentAddressesAreIndependent(t *testing.T) {
	h := New()
	h.Enqueue(1, NewCommand("power", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if cmds := h.LongPoll(ctx, 2); cmds != nil {
		t.Fatalf("expected address 2 to see nothing queued for address 1, got %+v", cmds)
	}
}
