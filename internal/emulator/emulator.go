// Package emulator wires the cartridge, CPU, PPU, and controller pair into
// the single facade the frontend drives: load a ROM, run it one frame at a
// time, read back the framebuffer. It replaces the teacher's app.Emulator,
// which carried adaptive frame-pacing, a pooled framebuffer allocator, and a
// running performance-stats struct (internal/app/emulator.go) — none of
// which belongs in the core: pacing to a wall clock and swapchain handling
// are the frontend's job (spec.md §12), not the emulation core's.
package emulator

import (
	"bytes"
	"fmt"

	"nesgo/internal/bus"
	"nesgo/internal/cartridge"
	"nesgo/internal/controller"
	"nesgo/internal/cpu"
	"nesgo/internal/ppu"
)

// ppuCyclesPerCPUCycle is the NTSC PPU/CPU clock ratio: the PPU's dot clock
// runs three times the CPU's, so every CPU cycle owes the PPU three Step calls.
const ppuCyclesPerCPUCycle = 3

// Emulator owns one running NES: its cartridge, bus, CPU, and PPU.
type Emulator struct {
	bus *bus.Bus
	cpu *cpu.CPU
}

// New loads romBytes as an iNES image and constructs a ready-to-run machine.
// Construction order mirrors spec.md §4's component graph: the cartridge
// exists first (the PPU needs it for CHR access and mirroring), then the
// PPU, then the bus that ties RAM/PPU/cartridge/controllers together, then
// the CPU, which only needs the bus's MemoryInterface.
func New(romBytes []byte) (*Emulator, error) {
	cart, err := cartridge.Load(bytes.NewReader(romBytes))
	if err != nil {
		return nil, fmt.Errorf("emulator: load cartridge: %w", err)
	}

	p := ppu.New(cart)
	b := bus.New(cart, p, controller.NewPair())
	c := cpu.New(b)
	c.Reset()
	b.Reset()

	return &Emulator{bus: b, cpu: c}, nil
}

// RunFrame advances the machine until the PPU reports that it has just
// completed a frame (wrapped from the pre-render scanline 261 back to
// scanline 0), then returns. The CPU
// drives the loop: each Step consumes a variable number of cycles (one
// instruction, an interrupt dispatch, or a DMA stall), and the PPU is run
// three ticks for every CPU cycle spent, matching NTSC timing.
func (e *Emulator) RunFrame() {
	for {
		cycles := e.cpu.Step()
		for i := uint64(0); i < cycles; i++ {
			e.bus.Tick()
			for j := 0; j < ppuCyclesPerCPUCycle; j++ {
				e.bus.PPU.Step()
			}
		}
		if e.bus.ConsumeFrameComplete() {
			return
		}
	}
}

// SetControllerState updates the live button state for controller port 1 or
// 2, read by the game on its next $4016/$4017 poll.
func (e *Emulator) SetControllerState(port int, state controller.State) {
	e.bus.SetControllerState(port, state)
}

// Framebuffer returns the PPU's current 256x240 packed-RGB (0x00RRGGBB)
// pixel buffer. The
// returned pointer is stable for the lifetime of the Emulator and is
// overwritten in place as frames render; callers that need a snapshot must
// copy it before calling RunFrame again.
func (e *Emulator) Framebuffer() *[256 * 240]uint32 {
	return e.bus.PPU.Framebuffer()
}

// Reset performs a CPU/bus reset without reloading the cartridge, equivalent
// to pressing the NES's reset button.
func (e *Emulator) Reset() {
	e.bus.Reset()
	e.cpu.Reset()
}
