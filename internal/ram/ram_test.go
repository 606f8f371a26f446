package ram

import "testing"

func TestMirroringIsIdempotent(t *testing.T) {
	r := New()
	r.Write(0x0000, 0x7A)
	for _, addr := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := r.Read(addr); got != 0x7A {
			t.Fatalf("Read(%#04x) = %#02x, want 0x7A", addr, got)
		}
	}
}

func TestWriteThroughMirror(t *testing.T) {
	r := New()
	r.Write(0x1801, 0x11)
	if got := r.Read(0x0001); got != 0x11 {
		t.Fatalf("Read(0x0001) = %#02x, want 0x11", got)
	}
}
