package cpu

// AddressingMode identifies how an instruction's operand address is formed.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
	numAddressingModes
)

// addressModeResolvers dispatches on AddressingMode via a function table
// rather than a switch, so adding a mode only means adding a table entry
// and a resolver function. Each resolver advances PC past the operand
// bytes and returns the effective address plus whether a page boundary
// was crossed forming it (affects cycle timing for some instructions).
var addressModeResolvers = [numAddressingModes]func(cpu *CPU) (uint16, bool){
	Implied:         resolveImplied,
	Accumulator:     resolveImplied,
	Immediate:       resolveImmediate,
	ZeroPage:        resolveZeroPage,
	ZeroPageX:       resolveZeroPageX,
	ZeroPageY:       resolveZeroPageY,
	Relative:        resolveRelative,
	Absolute:        resolveAbsolute,
	AbsoluteX:       resolveAbsoluteX,
	AbsoluteY:       resolveAbsoluteY,
	Indirect:        resolveIndirect,
	IndexedIndirect: resolveIndexedIndirect,
	IndirectIndexed: resolveIndirectIndexed,
}

// getOperandAddress returns the effective address for the given addressing
// mode, advancing PC past the instruction's operand bytes.
func (cpu *CPU) getOperandAddress(mode AddressingMode) (uint16, bool) {
	resolve := addressModeResolvers[mode]
	if resolve == nil {
		return 0, false
	}
	return resolve(cpu)
}

func resolveImplied(cpu *CPU) (uint16, bool) {
	cpu.PC++ // Single byte instruction
	return 0, false
}

func resolveImmediate(cpu *CPU) (uint16, bool) {
	address := cpu.PC + 1
	cpu.PC += 2
	return address, false
}

func resolveZeroPage(cpu *CPU) (uint16, bool) {
	address := uint16(cpu.memory.Read(cpu.PC + 1))
	cpu.PC += 2
	return address, false
}

func resolveZeroPageX(cpu *CPU) (uint16, bool) {
	base := cpu.memory.Read(cpu.PC + 1)
	address := uint16((base + cpu.X) & zeroPageMask) // Wrap within zero page
	cpu.PC += 2
	return address, false
}

func resolveZeroPageY(cpu *CPU) (uint16, bool) {
	base := cpu.memory.Read(cpu.PC + 1)
	address := uint16((base + cpu.Y) & zeroPageMask) // Wrap within zero page
	cpu.PC += 2
	return address, false
}

func resolveRelative(cpu *CPU) (uint16, bool) {
	offset := int8(cpu.memory.Read(cpu.PC + 1))
	oldPC := cpu.PC + 2
	newPC := uint16(int32(oldPC) + int32(offset))
	cpu.PC = oldPC // Will be updated by the branch handler if taken
	pageCrossed := (oldPC & pageMask) != (newPC & pageMask)
	return newPC, pageCrossed
}

func resolveAbsolute(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	address := (high << 8) | low
	cpu.PC += 3
	return address, false
}

func resolveAbsoluteX(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	base := (high << 8) | low
	address := base + uint16(cpu.X)
	cpu.PC += 3
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}

func resolveAbsoluteY(cpu *CPU) (uint16, bool) {
	low := uint16(cpu.memory.Read(cpu.PC + 1))
	high := uint16(cpu.memory.Read(cpu.PC + 2))
	base := (high << 8) | low
	address := base + uint16(cpu.Y)
	cpu.PC += 3
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}

// resolveIndirect is only used by JMP. It reproduces the 6502's page-wrap
// bug: if the pointer's low byte is 0xFF, the high byte is fetched from
// the start of the same page instead of the next one.
func resolveIndirect(cpu *CPU) (uint16, bool) {
	lowPtr := uint16(cpu.memory.Read(cpu.PC + 1))
	highPtr := uint16(cpu.memory.Read(cpu.PC + 2))
	ptr := (highPtr << 8) | lowPtr

	var address uint16
	if (ptr & zeroPageMask) == zeroPageMask {
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read(ptr & pageMask)) // Bug: wraps to start of page
		address = (high << 8) | low
	} else {
		low := uint16(cpu.memory.Read(ptr))
		high := uint16(cpu.memory.Read(ptr + 1))
		address = (high << 8) | low
	}
	cpu.PC += 3
	return address, false
}

func resolveIndexedIndirect(cpu *CPU) (uint16, bool) { // (zp,X)
	base := cpu.memory.Read(cpu.PC + 1)
	ptr := (base + cpu.X) & zeroPageMask // Wrap within zero page
	low := uint16(cpu.memory.Read(uint16(ptr)))
	high := uint16(cpu.memory.Read(uint16((ptr + 1) & zeroPageMask))) // Wrap within zero page
	address := (high << 8) | low
	cpu.PC += 2
	return address, false
}

func resolveIndirectIndexed(cpu *CPU) (uint16, bool) { // (zp),Y
	ptr := uint16(cpu.memory.Read(cpu.PC + 1))
	low := uint16(cpu.memory.Read(ptr))
	high := uint16(cpu.memory.Read((ptr + 1) & zeroPageMask)) // Wrap within zero page
	base := (high << 8) | low
	address := base + uint16(cpu.Y)
	cpu.PC += 2
	pageCrossed := (base & pageMask) != (address & pageMask)
	return address, pageCrossed
}
