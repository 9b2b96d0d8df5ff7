package inputbridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"viscabridge/internal/events"
	"viscabridge/internal/hub"
)

func TestHandleLineEnqueuesCommand(t *testing.T) {
	h := hub.New()
	if err := handleLine(`CAM,1,pan-tilt-drive,{"pan_speed":5}`, h, nil); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cmds := h.LongPoll(ctx, 1)
	if len(cmds) != 1 || cmds[0].Type != "pan-tilt-drive" {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
	var payload struct {
		PanSpeed int `json:"pan_speed"`
	}
	if err := json.Unmarshal(cmds[0].Payload, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.PanSpeed != 5 {
		t.Fatalf("expected pan_speed 5, got %d", payload.PanSpeed)
	}
}

func TestHandleLineWithoutPayload(t *testing.T) {
	h := hub.New()
	if err := handleLine("CAM,2,pan-tilt-home", h, nil); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	cmds := h.LongPoll(ctx, 2)
	if len(cmds) != 1 || cmds[0].Type != "pan-tilt-home" || cmds[0].Payload != nil {
		t.Fatalf("unexpected commands: %+v", cmds)
	}
}

func TestHandleLineRejectsMalformed(t *testing.T) {
	h := hub.New()
	if err := handleLine("not a command", h, nil); err == nil {
		t.Fatal("expected error for malformed line")
	}
	if err := handleLine("CAM,notanumber,power", h, nil); err == nil {
		t.Fatal("expected error for non-integer address")
	}
}

func TestHandleLinePushesActivityEvent(t *testing.T) {
	h := hub.New()
	buf := events.NewRing(8)
	if err := handleLine("CAM,3,power,{\"on\":true}", h, buf); err != nil {
		t.Fatal(err)
	}
	evs := buf.Pull(time.Now().Add(-time.Minute), 10)
	if len(evs) != 1 || evs[0].Camera != 3 || evs[0].Topic != "inputbridge/enqueue" {
		t.Fatalf("unexpected events: %+v", evs)
	}
}
