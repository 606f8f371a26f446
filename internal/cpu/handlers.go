package cpu

// Instruction handlers. Every handler shares the signature
// func(cpu *CPU, address uint16, pageCrossed bool) uint8 so opcodeTable
// can reference them directly as method expressions; most ignore
// pageCrossed; the branch handlers use it to add the page-cross cycle
// to a taken branch.

// Load operations
func (cpu *CPU) lda(address uint16, pageCrossed bool) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ldx(address uint16, pageCrossed bool) uint8 {
	cpu.X = cpu.memory.Read(address)
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) ldy(address uint16, pageCrossed bool) uint8 {
	cpu.Y = cpu.memory.Read(address)
	cpu.setZN(cpu.Y)
	return 0
}

// Store operations
func (cpu *CPU) sta(address uint16, pageCrossed bool) uint8 {
	cpu.memory.Write(address, cpu.A)
	return 0
}

func (cpu *CPU) stx(address uint16, pageCrossed bool) uint8 {
	cpu.memory.Write(address, cpu.X)
	return 0
}

func (cpu *CPU) sty(address uint16, pageCrossed bool) uint8 {
	cpu.memory.Write(address, cpu.Y)
	return 0
}

// Arithmetic operations
func (cpu *CPU) adc(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	carry := uint8(0)
	if cpu.C {
		carry = 1
	}

	result := uint16(cpu.A) + uint16(value) + uint16(carry)

	// Set overflow flag - occurs when sign of result differs from inputs
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0

	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sbc(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) ^ 0xFF // Invert bits for subtraction
	carry := uint8(0)
	if cpu.C {
		carry = 1
	}

	result := uint16(cpu.A) + uint16(value) + uint16(carry)

	// Set overflow flag
	cpu.V = ((cpu.A^uint8(result))&0x80) != 0 && ((cpu.A^value)&0x80) == 0

	cpu.C = result > 0xFF
	cpu.A = uint8(result)
	cpu.setZN(cpu.A)
	return 0
}

// Logical operations
func (cpu *CPU) and(address uint16, pageCrossed bool) uint8 {
	cpu.A &= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) ora(address uint16, pageCrossed bool) uint8 {
	cpu.A |= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) eor(address uint16, pageCrossed bool) uint8 {
	cpu.A ^= cpu.memory.Read(address)
	cpu.setZN(cpu.A)
	return 0
}

// Shift and rotate operations, memory operand
func (cpu *CPU) asl(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x80) != 0
	value <<= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) lsr(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x01) != 0
	value >>= 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) rol(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x80) != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) ror(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x01) != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

// Shift and rotate operations, accumulator operand (0x0A/0x4A/0x2A/0x6A).
// Split out as named handlers instead of inlined dispatch cases so the
// opcode table can reference them the same way as every other opcode.
func (cpu *CPU) aslAcc(address uint16, pageCrossed bool) uint8 {
	cpu.C = (cpu.A & 0x80) != 0
	cpu.A <<= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) lsrAcc(address uint16, pageCrossed bool) uint8 {
	cpu.C = (cpu.A & 0x01) != 0
	cpu.A >>= 1
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rolAcc(address uint16, pageCrossed bool) uint8 {
	oldCarry := cpu.C
	cpu.C = (cpu.A & 0x80) != 0
	cpu.A <<= 1
	if oldCarry {
		cpu.A |= 0x01
	}
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rorAcc(address uint16, pageCrossed bool) uint8 {
	oldCarry := cpu.C
	cpu.C = (cpu.A & 0x01) != 0
	cpu.A >>= 1
	if oldCarry {
		cpu.A |= 0x80
	}
	cpu.setZN(cpu.A)
	return 0
}

// Comparison operations
func (cpu *CPU) cmp(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpx(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.X - value
	cpu.C = cpu.X >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) cpy(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	result := cpu.Y - value
	cpu.C = cpu.Y >= value
	cpu.setZN(result)
	return 0
}

// Increment/Decrement operations
func (cpu *CPU) inc(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) dec(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	cpu.setZN(value)
	return 0
}

func (cpu *CPU) inx(address uint16, pageCrossed bool) uint8 {
	cpu.X++
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) dex(address uint16, pageCrossed bool) uint8 {
	cpu.X--
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) iny(address uint16, pageCrossed bool) uint8 {
	cpu.Y++
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) dey(address uint16, pageCrossed bool) uint8 {
	cpu.Y--
	cpu.setZN(cpu.Y)
	return 0
}

// Transfer operations
func (cpu *CPU) tax(address uint16, pageCrossed bool) uint8 {
	cpu.X = cpu.A
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txa(address uint16, pageCrossed bool) uint8 {
	cpu.A = cpu.X
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tay(address uint16, pageCrossed bool) uint8 {
	cpu.Y = cpu.A
	cpu.setZN(cpu.Y)
	return 0
}

func (cpu *CPU) tya(address uint16, pageCrossed bool) uint8 {
	cpu.A = cpu.Y
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) tsx(address uint16, pageCrossed bool) uint8 {
	cpu.X = cpu.SP
	cpu.setZN(cpu.X)
	return 0
}

func (cpu *CPU) txs(address uint16, pageCrossed bool) uint8 {
	cpu.SP = cpu.X
	return 0
}

// Stack operations
func (cpu *CPU) pha(address uint16, pageCrossed bool) uint8 {
	cpu.push(cpu.A)
	return 0
}

func (cpu *CPU) pla(address uint16, pageCrossed bool) uint8 {
	cpu.A = cpu.pop()
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) php(address uint16, pageCrossed bool) uint8 {
	cpu.push(cpu.GetStatusByte() | bFlagMask) // B flag set for PHP
	return 0
}

func (cpu *CPU) plp(address uint16, pageCrossed bool) uint8 {
	status := cpu.pop()
	cpu.SetStatusByte(status)
	return 0
}

// Flag operations
func (cpu *CPU) clc(address uint16, pageCrossed bool) uint8 {
	cpu.C = false
	return 0
}

func (cpu *CPU) sec(address uint16, pageCrossed bool) uint8 {
	cpu.C = true
	return 0
}

func (cpu *CPU) cli(address uint16, pageCrossed bool) uint8 {
	cpu.I = false
	return 0
}

func (cpu *CPU) sei(address uint16, pageCrossed bool) uint8 {
	cpu.I = true
	return 0
}

func (cpu *CPU) clv(address uint16, pageCrossed bool) uint8 {
	cpu.V = false
	return 0
}

func (cpu *CPU) cld(address uint16, pageCrossed bool) uint8 {
	cpu.D = false
	return 0
}

func (cpu *CPU) sed(address uint16, pageCrossed bool) uint8 {
	cpu.D = true
	return 0
}

// Control flow operations
func (cpu *CPU) jmp(address uint16, pageCrossed bool) uint8 {
	cpu.PC = address
	return 0
}

func (cpu *CPU) jsr(address uint16, pageCrossed bool) uint8 {
	// Push return address - 1 (JSR pushes PC-1)
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = address
	return 0
}

func (cpu *CPU) rts(address uint16, pageCrossed bool) uint8 {
	cpu.PC = cpu.popWord() + 1 // RTS adds 1 to popped address
	return 0
}

func (cpu *CPU) rti(address uint16, pageCrossed bool) uint8 {
	cpu.SetStatusByte(cpu.pop())
	cpu.PC = cpu.popWord()
	return 0
}

// Branch operations. Each returns 1 extra cycle for a taken branch, plus
// one more if taking it crossed a page boundary.
func (cpu *CPU) branchIf(taken bool, address uint16, pageCrossed bool) uint8 {
	if !taken {
		return 0
	}
	cpu.PC = address
	if pageCrossed {
		return 2
	}
	return 1
}

func (cpu *CPU) bcc(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(!cpu.C, address, pageCrossed)
}

func (cpu *CPU) bcs(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(cpu.C, address, pageCrossed)
}

func (cpu *CPU) bne(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(!cpu.Z, address, pageCrossed)
}

func (cpu *CPU) beq(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(cpu.Z, address, pageCrossed)
}

func (cpu *CPU) bpl(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(!cpu.N, address, pageCrossed)
}

func (cpu *CPU) bmi(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(cpu.N, address, pageCrossed)
}

func (cpu *CPU) bvc(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(!cpu.V, address, pageCrossed)
}

func (cpu *CPU) bvs(address uint16, pageCrossed bool) uint8 {
	return cpu.branchIf(cpu.V, address, pageCrossed)
}

// Miscellaneous operations
func (cpu *CPU) bit(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address)
	cpu.N = (value & nFlagMask) != 0 // Bit 7 of memory
	cpu.V = (value & vFlagMask) != 0 // Bit 6 of memory
	cpu.Z = (cpu.A & value) == 0     // Zero if A AND memory == 0
	return 0
}

func (cpu *CPU) nop(address uint16, pageCrossed bool) uint8 {
	return 0
}

func (cpu *CPU) brk(address uint16, pageCrossed bool) uint8 {
	// BRK is a 1-byte instruction, but it pushes PC+2 to the stack.
	// getOperandAddress for Implied mode has already incremented PC by 1.
	cpu.PC++ // Manually increment for the 'padding' byte
	cpu.pushWord(cpu.PC)

	cpu.push(cpu.GetStatusByte() | bFlagMask) // B flag is set when pushed by BRK/PHP
	cpu.I = true                              // Disable interrupts

	// Load IRQ vector into PC
	low := uint16(cpu.memory.Read(irqVector))
	high := uint16(cpu.memory.Read(irqVector + 1))
	cpu.PC = (high << 8) | low
	return 0
}

// --- Unofficial opcodes ---

func (cpu *CPU) lax(address uint16, pageCrossed bool) uint8 {
	cpu.A = cpu.memory.Read(address)
	cpu.X = cpu.A
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sax(address uint16, pageCrossed bool) uint8 {
	cpu.memory.Write(address, cpu.A&cpu.X)
	return 0
}

func (cpu *CPU) dcp(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) - 1
	cpu.memory.Write(address, value)
	result := cpu.A - value
	cpu.C = cpu.A >= value
	cpu.setZN(result)
	return 0
}

func (cpu *CPU) isb(address uint16, pageCrossed bool) uint8 {
	value := cpu.memory.Read(address) + 1
	cpu.memory.Write(address, value)
	// Re-use SBC logic; it reads the already-incremented value back.
	cpu.sbc(address, false)
	return 0
}

func (cpu *CPU) slo(address uint16, pageCrossed bool) uint8 {
	// ASL part
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x80) != 0
	value <<= 1
	cpu.memory.Write(address, value)
	// ORA part
	cpu.A |= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rla(address uint16, pageCrossed bool) uint8 {
	// ROL part
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x80) != 0
	value <<= 1
	if oldCarry {
		value |= 0x01
	}
	cpu.memory.Write(address, value)
	// AND part
	cpu.A &= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) sre(address uint16, pageCrossed bool) uint8 {
	// LSR part
	value := cpu.memory.Read(address)
	cpu.C = (value & 0x01) != 0
	value >>= 1
	cpu.memory.Write(address, value)
	// EOR part
	cpu.A ^= value
	cpu.setZN(cpu.A)
	return 0
}

func (cpu *CPU) rra(address uint16, pageCrossed bool) uint8 {
	// ROR part
	value := cpu.memory.Read(address)
	oldCarry := cpu.C
	cpu.C = (value & 0x01) != 0
	value >>= 1
	if oldCarry {
		value |= 0x80
	}
	cpu.memory.Write(address, value)
	// ADC part
	cpu.adc(address, false)
	return 0
}
