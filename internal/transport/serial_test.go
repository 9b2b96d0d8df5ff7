package transport

import (
	"bytes"
	"testing"
)

func TestSplitFramesCompleteOnly(t *testing.T) {
	in := []byte{0x81, 0x01, 0x04, 0x00, 0xFF, 0x88, 0x30, 0x02, 0xFF}
	frames, rem := splitFrames(in)
	if len(rem) != 0 {
		t.Fatalf("expected no remainder, got % X", rem)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if !bytes.Equal(frames[0], []byte{0x81, 0x01, 0x04, 0x00, 0xFF}) {
		t.Fatalf("unexpected first frame: % X", frames[0])
	}
	if !bytes.Equal(frames[1], []byte{0x88, 0x30, 0x02, 0xFF}) {
		t.Fatalf("unexpected second frame: % X", frames[1])
	}
}

func TestSplitFramesHoldsPartial(t *testing.T) {
	in := []byte{0x81, 0x01, 0x04, 0x00, 0xFF, 0x82, 0x01}
	frames, rem := splitFrames(in)
	if len(frames) != 1 {
		t.Fatalf("expected 1 complete frame, got %d", len(frames))
	}
	if !bytes.Equal(rem, []byte{0x82, 0x01}) {
		t.Fatalf("unexpected remainder: % X", rem)
	}
}
