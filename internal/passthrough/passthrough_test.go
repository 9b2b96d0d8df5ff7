package passthrough

import (
	"bytes"
	"testing"
)

func TestRewriteHeaderRetargetsSourceAndRecipient(t *testing.T) {
	// Client mistakenly addresses itself to camera 3 while the passthrough
	// endpoint is bound to camera 1: header/recipient must be corrected,
	// payload and message type must survive untouched.
	client := []byte{0x83, 0x01, 0x04, 0x00, 0xFF} // src=0 recv=3, power-on
	got, err := rewriteHeader(client, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x81, 0x01, 0x04, 0x00, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X, want % X", got, want)
	}
}

func TestRewriteHeaderRejectsGarbage(t *testing.T) {
	if _, err := rewriteHeader([]byte{0x00, 0x01}, 1); err == nil {
		t.Fatal("expected parse error for malformed frame")
	}
}
