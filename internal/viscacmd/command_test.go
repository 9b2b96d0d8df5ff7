package viscacmd

import (
	"bytes"
	"testing"

	"viscabridge/internal/viscawire"
)

func mustSerialize(t *testing.T, c *Command) []byte {
	t.Helper()
	f, err := c.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if f[len(f)-1] != 0xFF {
		t.Fatalf("frame does not end in 0xFF: % X", f)
	}
	for _, b := range f[:len(f)-1] {
		if b == 0xFF {
			t.Fatalf("frame has interior 0xFF: % X", f)
		}
	}
	return f
}

// Scenario 1 (§8): zoom-in direct.
func TestScenarioZoomDirect(t *testing.T) {
	c := CmdZoomDirect(1, 0x1234, false)
	got := mustSerialize(t, c)
	want := []byte{0x81, 0x01, 0x04, 0x47, 0x01, 0x02, 0x03, 0x04, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

// Scenario 3 (§8): pan-tilt direct negative. si2v(-100) = 0x0F,0x0F,0x09,0x0C
// and si2v(200) = 0x00,0x00,0x0C,0x08 by the §4.1 nibble formula (the
// worked hex dump in spec.md's own prose is garbled by a text-extraction
// artifact; the formula is authoritative).
func TestScenarioPanTiltDirect(t *testing.T) {
	c := CmdPanTiltDirect(2, 10, 10, -100, 200, false)
	got := mustSerialize(t, c)
	want := []byte{0x82, 0x01, 0x06, 0x02, 0x0A, 0x0A, 0x0F, 0x0F, 0x09, 0x0C, 0x00, 0x00, 0x0C, 0x08, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestAddressSetBroadcastFrame(t *testing.T) {
	c := CmdAddressSet()
	got := mustSerialize(t, c)
	want := []byte{0x88, 0x30, 0x01, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	orig := CmdPower(3, true)
	frame, err := orig.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	parsed, err := Parse(frame)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Source != orig.Source || parsed.Recipient != orig.Recipient ||
		parsed.MsgType != orig.MsgType || parsed.Datatype != orig.Datatype ||
		!bytes.Equal(parsed.Payload, orig.Payload) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", parsed, orig)
	}
}

func TestParseInquiryReply(t *testing.T) {
	// 81 09 04 00 FF -> reply 90 50 02 FF (power on)
	inq := InqPowerCmd(1)
	frame := mustSerialize(t, inq)
	want := []byte{0x81, 0x09, 0x04, 0x00, 0xFF}
	if !bytes.Equal(frame, want) {
		t.Fatalf("got % X, want % X", frame, want)
	}
	reply, err := Parse([]byte{0x90, 0x50, 0x02, 0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if reply.MsgType != viscawire.Complete || reply.Socket != 0 {
		t.Fatalf("unexpected reply decode: %+v", reply)
	}
	v, err := inq.ReplyParser(reply.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if got := v; got == nil {
		t.Fatal("expected parsed power state")
	}
}

func TestParseRejectsMissingTerminator(t *testing.T) {
	if _, err := Parse([]byte{0x81, 0x01, 0x00}); err == nil {
		t.Fatal("expected error for missing terminator")
	}
}

func TestValidateRejectsBadRecipient(t *testing.T) {
	c := CmdPower(9, true)
	if _, err := c.Serialize(); err == nil {
		t.Fatal("expected validation error for out-of-range recipient")
	}
}
