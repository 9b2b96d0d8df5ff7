package discovery

import "testing"

func TestIsOwnProbeDetectsMagic(t *testing.T) {
	if !isOwnProbe([]byte(probeMagic + " abc-123")) {
		t.Fatal("expected own probe to be recognized")
	}
	if isOwnProbe([]byte("something else entirely")) {
		t.Fatal("did not expect an unrelated payload to match")
	}
}
