// Package controller implements the NES gamepad shift register at $4016/$4017.
package controller

// Button identifies one of the eight NES pad buttons, in the bit order
// the hardware shift register reads them out (spec.md §3): A, B, Select,
// Start, Up, Down, Left, Right from bit 0.
type Button uint8

const (
	A Button = 1 << iota
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

// State holds the eight logical button states a host sets once per frame.
type State struct {
	A, B, Select, Start, Up, Down, Left, Right bool
}

func (s State) pack() uint8 {
	var b uint8
	if s.A {
		b |= uint8(A)
	}
	if s.B {
		b |= uint8(B)
	}
	if s.Select {
		b |= uint8(Select)
	}
	if s.Start {
		b |= uint8(Start)
	}
	if s.Up {
		b |= uint8(Up)
	}
	if s.Down {
		b |= uint8(Down)
	}
	if s.Left {
		b |= uint8(Left)
	}
	if s.Right {
		b |= uint8(Right)
	}
	return b
}

// Controller is one latched 8-bit shift register port (spec.md §4.3).
type Controller struct {
	buttons uint8
	strobe  bool
	shift   uint8
	reads   uint8
}

// New returns a controller with no buttons held.
func New() *Controller {
	return &Controller{}
}

// SetState latches the host's current logical button state for the next
// strobe. It does not itself affect an in-progress read sequence.
func (c *Controller) SetState(s State) {
	c.buttons = s.pack()
}

// Write handles a write to $4016. Bit 0 = 1 holds strobe high and resets
// the poll counter; the 1->0 transition latches the button state into the
// shift register (spec.md §4.3).
func (c *Controller) Write(value uint8) {
	high := value&1 != 0
	if high {
		c.strobe = true
		c.reads = 0
		c.shift = c.buttons
		return
	}
	if c.strobe {
		c.shift = c.buttons
		c.reads = 0
	}
	c.strobe = false
}

// Read returns the next latched bit in bit 0 of the byte. While strobe is
// held high the register continuously reloads from the live button state,
// so every read returns button A. After 8 reads it returns 2 forever
// (spec.md §4.3, confirmed against original_source/src/controller.rs's
// peek()).
func (c *Controller) Read() uint8 {
	if c.strobe {
		return c.buttons & 1
	}
	if c.reads >= 8 {
		return 2
	}
	bit := c.shift & 1
	c.shift >>= 1
	c.reads++
	return bit
}

// Reset clears latched state on power-up/reset.
func (c *Controller) Reset() {
	c.buttons = 0
	c.strobe = false
	c.shift = 0
	c.reads = 0
}

// Pair is the two gamepad ports the Bus exposes at $4016/$4017.
type Pair struct {
	Port1 *Controller
	Port2 *Controller
}

// NewPair returns two fresh, unpressed controllers.
func NewPair() *Pair {
	return &Pair{Port1: New(), Port2: New()}
}

// Reset resets both ports.
func (p *Pair) Reset() {
	p.Port1.Reset()
	p.Port2.Reset()
}
