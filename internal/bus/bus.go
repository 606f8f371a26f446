// Package bus implements the NES system bus: the CPU-side address decoder
// that routes loads and stores to RAM, the PPU registers, OAM DMA, the
// controllers and cartridge PRG (spec.md §4.4).
package bus

import (
	"nesgo/internal/cartridge"
	"nesgo/internal/controller"
	"nesgo/internal/ppu"
	"nesgo/internal/ram"
)

// Bus is the single concrete address decoder for the whole machine. Per
// spec.md §9 design notes, the device set is closed and fixed, so a
// switch over address ranges is simpler than dispatching through a
// shared device interface.
type Bus struct {
	RAM  *ram.RAM
	PPU  *ppu.PPU
	Cart *cartridge.Cartridge
	Pads *controller.Pair

	cycles       uint64
	pendingStall int
}

// New wires a Bus around already-constructed devices. The Emulator facade
// owns construction order: cartridge, then PPU, then Bus, then CPU.
func New(cart *cartridge.Cartridge, p *ppu.PPU, pads *controller.Pair) *Bus {
	return &Bus{
		RAM:  ram.New(),
		PPU:  p,
		Cart: cart,
		Pads: pads,
	}
}

// Reset clears bus-owned timing state; devices reset themselves.
func (b *Bus) Reset() {
	b.cycles = 0
	b.pendingStall = 0
	b.Pads.Reset()
}

// Tick advances the bus's cycle counter by one CPU clock. The Emulator's
// RunFrame calls this once per CPU cycle so OAM DMA's odd/even cycle penalty can be
// computed (spec.md §9 Open Question 2).
func (b *Bus) Tick() { b.cycles++ }

// Read decodes a CPU load per the address table in spec.md §4.4.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return b.RAM.Read(address)
	case address < 0x4000:
		return b.PPU.ReadRegister(0x2000 + address&0x0007)
	case address == 0x4016:
		return b.Pads.Port1.Read()
	case address == 0x4017:
		return b.Pads.Port2.Read()
	case address >= 0x4020:
		return b.Cart.ReadPRG(address)
	default:
		return 0
	}
}

// Write decodes a CPU store per the address table in spec.md §4.4.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		b.RAM.Write(address, value)
	case address < 0x4000:
		b.PPU.WriteRegister(0x2000+address&0x0007, value)
	case address == 0x4014:
		b.triggerOAMDMA(value)
	case address == 0x4016:
		b.Pads.Port1.Write(value)
		b.Pads.Port2.Write(value)
	case address >= 0x4020:
		b.Cart.WritePRG(address, value)
	}
}

// Peek16 reads a little-endian 16-bit value with no page-wrap handling;
// the JMP-indirect bug is reproduced in the CPU's addressing-mode
// resolution instead, not here (spec.md §4.4, §4.6).
func (b *Bus) Peek16(address uint16) uint16 {
	lo := uint16(b.Read(address))
	hi := uint16(b.Read(address + 1))
	return lo | hi<<8
}

// triggerOAMDMA copies 256 bytes from CPU page value<<8 into OAM starting
// at the PPU's current OAMADDR (spec.md §4.4 invariant), and arms a
// 513-cycle CPU stall, or 514 if DMA starts on an odd CPU cycle
// (spec.md §9 Open Question 2).
func (b *Bus) triggerOAMDMA(page uint8) {
	base := uint16(page) << 8
	start := b.PPU.OAMAddr()
	for i := 0; i < 256; i++ {
		value := b.Read(base + uint16(i))
		b.PPU.WriteOAM(start+uint8(i), value)
	}
	b.pendingStall = 513
	if b.cycles%2 == 1 {
		b.pendingStall++
	}
}

// TakeStallCycles reports and clears any CPU stall owed for OAM DMA; the
// CPU's next Step() after the store that triggered it spends the whole
// stall and returns it as that Step's cycle count (spec.md §4.4).
func (b *Bus) TakeStallCycles() int {
	n := b.pendingStall
	b.pendingStall = 0
	return n
}

// ConsumeNMI reports and clears a pending PPU NMI request.
func (b *Bus) ConsumeNMI() bool { return b.PPU.ConsumeNMI() }

// ConsumeFrameComplete reports and clears the PPU's end-of-frame flag.
func (b *Bus) ConsumeFrameComplete() bool { return b.PPU.ConsumeFrameComplete() }

// SetControllerState latches a frame's button state into port 1 or 2.
func (b *Bus) SetControllerState(port int, s controller.State) {
	switch port {
	case 1:
		b.Pads.Port1.SetState(s)
	case 2:
		b.Pads.Port2.SetState(s)
	}
}
