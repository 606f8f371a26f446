package bus

import (
	"bytes"
	"testing"

	"nesgo/internal/cartridge"
	"nesgo/internal/controller"
	"nesgo/internal/ppu"
)

func buildROM(prgBanks, chrBanks int, flags6 uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1a")
	buf.WriteByte(uint8(prgBanks))
	buf.WriteByte(uint8(chrBanks))
	buf.WriteByte(flags6)
	buf.WriteByte(0)
	buf.Write(make([]byte, 8))
	buf.Write(make([]byte, prgBanks*16384))
	buf.Write(make([]byte, chrBanks*8192))
	return buf.Bytes()
}

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	cart, err := cartridge.Load(bytes.NewReader(buildROM(1, 1, 0)))
	if err != nil {
		t.Fatalf("cartridge.Load: %v", err)
	}
	p := ppu.New(cart)
	return New(cart, p, controller.NewPair())
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0000, 0x42)
	if got := b.Read(0x0800); got != 0x42 {
		t.Fatalf("RAM mirror: $0800 = %#02x, want 0x42", got)
	}
	if got := b.Read(0x1800); got != 0x42 {
		t.Fatalf("RAM mirror: $1800 = %#02x, want 0x42", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x2000, 0x80)
	if got := b.PPU.ReadRegister(0x2000); got&0x80 == 0 {
		t.Fatalf("expected PPUCTRL to latch bit 7")
	}
	// $2008 mirrors $2000; writing there should hit the same register.
	b.Write(0x2008, 0x00)
	if b.PPU.ReadRegister(0x2000)&0x80 != 0 {
		t.Fatal("expected $2008 write to alias PPUCTRL at $2000")
	}
}

func TestCartridgePRGVisibleAtTopOfMap(t *testing.T) {
	b := newTestBus(t)
	if got := b.Read(0x8000); got != 0x00 {
		t.Fatalf("PRG read = %#02x, want 0x00 (zero-filled test ROM)", got)
	}
	b.Write(0x8000, 0x5A)
	if got := b.Read(0x8000); got != 0x5A {
		t.Fatalf("PRG write not tolerated through the bus: got %#02x", got)
	}
}

func TestControllerPorts(t *testing.T) {
	b := newTestBus(t)
	b.SetControllerState(1, controller.State{A: true})
	b.SetControllerState(2, controller.State{B: true})

	b.Write(0x4016, 1)
	b.Write(0x4016, 0)
	if got := b.Read(0x4016); got != 1 {
		t.Fatalf("controller 1 first read = %d, want 1 (button A)", got)
	}
	if got := b.Read(0x4017); got != 0 {
		t.Fatalf("controller 2 first read = %d, want 0 (button A not held)", got)
	}
	if got := b.Read(0x4017); got != 1 {
		t.Fatalf("controller 2 second read = %d, want 1 (button B)", got)
	}
}

func TestOAMDMACopiesPageAndStallsCPU(t *testing.T) {
	b := newTestBus(t)
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}
	b.Write(0x4014, 0x02)

	if got := b.PPU.ReadRegister(0x2004); got != 0 {
		t.Fatalf("OAM[0] after DMA = %#02x, want 0x00", got)
	}
	if stall := b.TakeStallCycles(); stall != 513 {
		t.Fatalf("OAM DMA stall = %d, want 513 on an even starting cycle", stall)
	}
	if stall := b.TakeStallCycles(); stall != 0 {
		t.Fatalf("TakeStallCycles should clear after being read, got %d", stall)
	}
}

func TestOAMDMAOddCycleAddsExtraStall(t *testing.T) {
	b := newTestBus(t)
	b.Tick() // advance to an odd cycle count
	b.Write(0x4014, 0x02)
	if stall := b.TakeStallCycles(); stall != 514 {
		t.Fatalf("OAM DMA stall on odd cycle = %d, want 514", stall)
	}
}

func TestPeek16LittleEndian(t *testing.T) {
	b := newTestBus(t)
	b.Write(0x0010, 0x34)
	b.Write(0x0011, 0x12)
	if got := b.Peek16(0x0010); got != 0x1234 {
		t.Fatalf("Peek16 = %#04x, want 0x1234", got)
	}
}
