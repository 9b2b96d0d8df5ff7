package viscawire

import "testing"

func TestI2VRoundTrip(t *testing.T) {
	for _, u := range []uint16{0, 1, 0x1234, 0xFFFF, 0x7AC0, 0x4000} {
		v := I2V(u)
		for _, b := range v {
			if b&0xF0 != 0 {
				t.Fatalf("I2V(%#x) produced non-nibble byte %#x", u, b)
			}
		}
		got := V2I(v[:]...)
		if got != u {
			t.Fatalf("V2I(I2V(%#x)) = %#x, want %#x", u, got, u)
		}
	}
}

func TestSI2VRoundTrip(t *testing.T) {
	for _, s := range []int32{0, 1, -1, -100, 200, 32767, -32768} {
		v := SI2V(s)
		got := V2SI(v[:]...)
		if got != s {
			t.Fatalf("V2SI(SI2V(%d)) = %d, want %d", s, got, s)
		}
	}
}

func TestSI2VClamps(t *testing.T) {
	vHigh := SI2V(40000)
	if got := V2SI(vHigh[:]...); got != 32767 {
		t.Fatalf("clamp high: got %d", got)
	}
	vLow := SI2V(-40000)
	if got := V2SI(vLow[:]...); got != -32768 {
		t.Fatalf("clamp low: got %d", got)
	}
}

func TestHeaderEncoding(t *testing.T) {
	cases := []struct {
		src, recv int
		bc        bool
		want      byte
	}{
		{0, 1, false, 0x81},
		{0, 2, false, 0x82},
		{3, 1, false, 0xB1},
		{0, 0, true, 0x88},
		{5, 3, true, 0x88}, // broadcast collapses to 0x88 regardless of src/recv bits requested
	}
	for _, c := range cases {
		got := Header(c.src, c.recv, c.bc)
		if got != c.want {
			t.Errorf("Header(%d,%d,%v) = %#x, want %#x", c.src, c.recv, c.bc, got, c.want)
		}
	}
}

func TestParseHeaderRoundTrip(t *testing.T) {
	h := Header(0, 2, false)
	p := ParseHeader(h)
	if p.Source != 0 || p.Recipient != 2 || p.Broadcast {
		t.Fatalf("unexpected parse: %+v", p)
	}

	h = Header(0, 0, true)
	p = ParseHeader(h)
	if !p.Broadcast || p.Recipient != -1 {
		t.Fatalf("unexpected broadcast parse: %+v", p)
	}
}

func TestSplitAndMakeQQ(t *testing.T) {
	mt, sock := SplitQQ(0x01)
	if mt != Command || sock != 0 {
		t.Fatalf("got %v/%d", mt, sock)
	}
	mt, sock = SplitQQ(0x41)
	if mt != Ack || sock != 1 {
		t.Fatalf("got %v/%d", mt, sock)
	}
	if MakeQQ(Ack, 2) != 0x42 {
		t.Fatalf("MakeQQ mismatch")
	}
	if MakeQQ(Command, 0) != 0x01 {
		t.Fatalf("MakeQQ command mismatch")
	}
}
