package cpu

// Instruction is one entry in the opcode table: everything Step needs to
// fetch, time, and execute a single opcode byte.
type Instruction struct {
	Name             string
	Opcode           uint8
	Bytes            uint8
	Cycles           uint8
	Mode             AddressingMode
	PageCrossPenalty bool // indexed/indirect read (and a few RMW) opcodes that cost an extra cycle when the operand address crosses a page
	Run              func(cpu *CPU, address uint16, pageCrossed bool) uint8
}

// opcodeTable is the single source of truth for opcode dispatch: one row
// per opcode carries its timing, addressing mode, and the handler method
// to run, via a method expression (Go's bound-function-value form). There
// is no separate dispatch switch to keep in sync with this table.
var opcodeTable = [...]Instruction{
	// Load/Store
	{"LDA", 0xA9, 2, 2, Immediate, false, (*CPU).lda},
	{"LDA", 0xA5, 2, 3, ZeroPage, false, (*CPU).lda},
	{"LDA", 0xB5, 2, 4, ZeroPageX, false, (*CPU).lda},
	{"LDA", 0xAD, 3, 4, Absolute, false, (*CPU).lda},
	{"LDA", 0xBD, 3, 4, AbsoluteX, true, (*CPU).lda},
	{"LDA", 0xB9, 3, 4, AbsoluteY, true, (*CPU).lda},
	{"LDA", 0xA1, 2, 6, IndexedIndirect, false, (*CPU).lda},
	{"LDA", 0xB1, 2, 5, IndirectIndexed, true, (*CPU).lda},

	{"LDX", 0xA2, 2, 2, Immediate, false, (*CPU).ldx},
	{"LDX", 0xA6, 2, 3, ZeroPage, false, (*CPU).ldx},
	{"LDX", 0xB6, 2, 4, ZeroPageY, false, (*CPU).ldx},
	{"LDX", 0xAE, 3, 4, Absolute, false, (*CPU).ldx},
	{"LDX", 0xBE, 3, 4, AbsoluteY, true, (*CPU).ldx},

	{"LDY", 0xA0, 2, 2, Immediate, false, (*CPU).ldy},
	{"LDY", 0xA4, 2, 3, ZeroPage, false, (*CPU).ldy},
	{"LDY", 0xB4, 2, 4, ZeroPageX, false, (*CPU).ldy},
	{"LDY", 0xAC, 3, 4, Absolute, false, (*CPU).ldy},
	{"LDY", 0xBC, 3, 4, AbsoluteX, true, (*CPU).ldy},

	{"STA", 0x85, 2, 3, ZeroPage, false, (*CPU).sta},
	{"STA", 0x95, 2, 4, ZeroPageX, false, (*CPU).sta},
	{"STA", 0x8D, 3, 4, Absolute, false, (*CPU).sta},
	{"STA", 0x9D, 3, 5, AbsoluteX, false, (*CPU).sta},
	{"STA", 0x99, 3, 5, AbsoluteY, false, (*CPU).sta},
	{"STA", 0x81, 2, 6, IndexedIndirect, false, (*CPU).sta},
	{"STA", 0x91, 2, 6, IndirectIndexed, false, (*CPU).sta},

	{"STX", 0x86, 2, 3, ZeroPage, false, (*CPU).stx},
	{"STX", 0x96, 2, 4, ZeroPageY, false, (*CPU).stx},
	{"STX", 0x8E, 3, 4, Absolute, false, (*CPU).stx},

	{"STY", 0x84, 2, 3, ZeroPage, false, (*CPU).sty},
	{"STY", 0x94, 2, 4, ZeroPageX, false, (*CPU).sty},
	{"STY", 0x8C, 3, 4, Absolute, false, (*CPU).sty},

	// Arithmetic
	{"ADC", 0x69, 2, 2, Immediate, false, (*CPU).adc},
	{"ADC", 0x65, 2, 3, ZeroPage, false, (*CPU).adc},
	{"ADC", 0x75, 2, 4, ZeroPageX, false, (*CPU).adc},
	{"ADC", 0x6D, 3, 4, Absolute, false, (*CPU).adc},
	{"ADC", 0x7D, 3, 4, AbsoluteX, true, (*CPU).adc},
	{"ADC", 0x79, 3, 4, AbsoluteY, true, (*CPU).adc},
	{"ADC", 0x61, 2, 6, IndexedIndirect, false, (*CPU).adc},
	{"ADC", 0x71, 2, 5, IndirectIndexed, true, (*CPU).adc},

	{"SBC", 0xE9, 2, 2, Immediate, false, (*CPU).sbc},
	{"SBC", 0xEB, 2, 2, Immediate, false, (*CPU).sbc}, // unofficial duplicate of 0xE9
	{"SBC", 0xE5, 2, 3, ZeroPage, false, (*CPU).sbc},
	{"SBC", 0xF5, 2, 4, ZeroPageX, false, (*CPU).sbc},
	{"SBC", 0xED, 3, 4, Absolute, false, (*CPU).sbc},
	{"SBC", 0xFD, 3, 4, AbsoluteX, true, (*CPU).sbc},
	{"SBC", 0xF9, 3, 4, AbsoluteY, true, (*CPU).sbc},
	{"SBC", 0xE1, 2, 6, IndexedIndirect, false, (*CPU).sbc},
	{"SBC", 0xF1, 2, 5, IndirectIndexed, true, (*CPU).sbc},

	// Logical
	{"AND", 0x29, 2, 2, Immediate, false, (*CPU).and},
	{"AND", 0x25, 2, 3, ZeroPage, false, (*CPU).and},
	{"AND", 0x35, 2, 4, ZeroPageX, false, (*CPU).and},
	{"AND", 0x2D, 3, 4, Absolute, false, (*CPU).and},
	{"AND", 0x3D, 3, 4, AbsoluteX, true, (*CPU).and},
	{"AND", 0x39, 3, 4, AbsoluteY, true, (*CPU).and},
	{"AND", 0x21, 2, 6, IndexedIndirect, false, (*CPU).and},
	{"AND", 0x31, 2, 5, IndirectIndexed, true, (*CPU).and},

	{"ORA", 0x09, 2, 2, Immediate, false, (*CPU).ora},
	{"ORA", 0x05, 2, 3, ZeroPage, false, (*CPU).ora},
	{"ORA", 0x15, 2, 4, ZeroPageX, false, (*CPU).ora},
	{"ORA", 0x0D, 3, 4, Absolute, false, (*CPU).ora},
	{"ORA", 0x1D, 3, 4, AbsoluteX, true, (*CPU).ora},
	{"ORA", 0x19, 3, 4, AbsoluteY, true, (*CPU).ora},
	{"ORA", 0x01, 2, 6, IndexedIndirect, false, (*CPU).ora},
	{"ORA", 0x11, 2, 5, IndirectIndexed, true, (*CPU).ora},

	{"EOR", 0x49, 2, 2, Immediate, false, (*CPU).eor},
	{"EOR", 0x45, 2, 3, ZeroPage, false, (*CPU).eor},
	{"EOR", 0x55, 2, 4, ZeroPageX, false, (*CPU).eor},
	{"EOR", 0x4D, 3, 4, Absolute, false, (*CPU).eor},
	{"EOR", 0x5D, 3, 4, AbsoluteX, true, (*CPU).eor},
	{"EOR", 0x59, 3, 4, AbsoluteY, true, (*CPU).eor},
	{"EOR", 0x41, 2, 6, IndexedIndirect, false, (*CPU).eor},
	{"EOR", 0x51, 2, 5, IndirectIndexed, true, (*CPU).eor},

	// Shift and rotate
	{"ASL", 0x0A, 1, 2, Accumulator, false, (*CPU).aslAcc},
	{"ASL", 0x06, 2, 5, ZeroPage, false, (*CPU).asl},
	{"ASL", 0x16, 2, 6, ZeroPageX, false, (*CPU).asl},
	{"ASL", 0x0E, 3, 6, Absolute, false, (*CPU).asl},
	{"ASL", 0x1E, 3, 7, AbsoluteX, false, (*CPU).asl},

	{"LSR", 0x4A, 1, 2, Accumulator, false, (*CPU).lsrAcc},
	{"LSR", 0x46, 2, 5, ZeroPage, false, (*CPU).lsr},
	{"LSR", 0x56, 2, 6, ZeroPageX, false, (*CPU).lsr},
	{"LSR", 0x4E, 3, 6, Absolute, false, (*CPU).lsr},
	{"LSR", 0x5E, 3, 7, AbsoluteX, false, (*CPU).lsr},

	{"ROL", 0x2A, 1, 2, Accumulator, false, (*CPU).rolAcc},
	{"ROL", 0x26, 2, 5, ZeroPage, false, (*CPU).rol},
	{"ROL", 0x36, 2, 6, ZeroPageX, false, (*CPU).rol},
	{"ROL", 0x2E, 3, 6, Absolute, false, (*CPU).rol},
	{"ROL", 0x3E, 3, 7, AbsoluteX, false, (*CPU).rol},

	{"ROR", 0x6A, 1, 2, Accumulator, false, (*CPU).rorAcc},
	{"ROR", 0x66, 2, 5, ZeroPage, false, (*CPU).ror},
	{"ROR", 0x76, 2, 6, ZeroPageX, false, (*CPU).ror},
	{"ROR", 0x6E, 3, 6, Absolute, false, (*CPU).ror},
	{"ROR", 0x7E, 3, 7, AbsoluteX, false, (*CPU).ror},

	// Comparison
	{"CMP", 0xC9, 2, 2, Immediate, false, (*CPU).cmp},
	{"CMP", 0xC5, 2, 3, ZeroPage, false, (*CPU).cmp},
	{"CMP", 0xD5, 2, 4, ZeroPageX, false, (*CPU).cmp},
	{"CMP", 0xCD, 3, 4, Absolute, false, (*CPU).cmp},
	{"CMP", 0xDD, 3, 4, AbsoluteX, true, (*CPU).cmp},
	{"CMP", 0xD9, 3, 4, AbsoluteY, true, (*CPU).cmp},
	{"CMP", 0xC1, 2, 6, IndexedIndirect, false, (*CPU).cmp},
	{"CMP", 0xD1, 2, 5, IndirectIndexed, true, (*CPU).cmp},

	{"CPX", 0xE0, 2, 2, Immediate, false, (*CPU).cpx},
	{"CPX", 0xE4, 2, 3, ZeroPage, false, (*CPU).cpx},
	{"CPX", 0xEC, 3, 4, Absolute, false, (*CPU).cpx},

	{"CPY", 0xC0, 2, 2, Immediate, false, (*CPU).cpy},
	{"CPY", 0xC4, 2, 3, ZeroPage, false, (*CPU).cpy},
	{"CPY", 0xCC, 3, 4, Absolute, false, (*CPU).cpy},

	// Increment/decrement
	{"INC", 0xE6, 2, 5, ZeroPage, false, (*CPU).inc},
	{"INC", 0xF6, 2, 6, ZeroPageX, false, (*CPU).inc},
	{"INC", 0xEE, 3, 6, Absolute, false, (*CPU).inc},
	{"INC", 0xFE, 3, 7, AbsoluteX, false, (*CPU).inc},

	{"DEC", 0xC6, 2, 5, ZeroPage, false, (*CPU).dec},
	{"DEC", 0xD6, 2, 6, ZeroPageX, false, (*CPU).dec},
	{"DEC", 0xCE, 3, 6, Absolute, false, (*CPU).dec},
	{"DEC", 0xDE, 3, 7, AbsoluteX, false, (*CPU).dec},

	{"INX", 0xE8, 1, 2, Implied, false, (*CPU).inx},
	{"DEX", 0xCA, 1, 2, Implied, false, (*CPU).dex},
	{"INY", 0xC8, 1, 2, Implied, false, (*CPU).iny},
	{"DEY", 0x88, 1, 2, Implied, false, (*CPU).dey},

	// Transfer
	{"TAX", 0xAA, 1, 2, Implied, false, (*CPU).tax},
	{"TXA", 0x8A, 1, 2, Implied, false, (*CPU).txa},
	{"TAY", 0xA8, 1, 2, Implied, false, (*CPU).tay},
	{"TYA", 0x98, 1, 2, Implied, false, (*CPU).tya},
	{"TSX", 0xBA, 1, 2, Implied, false, (*CPU).tsx},
	{"TXS", 0x9A, 1, 2, Implied, false, (*CPU).txs},

	// Stack
	{"PHA", 0x48, 1, 3, Implied, false, (*CPU).pha},
	{"PLA", 0x68, 1, 4, Implied, false, (*CPU).pla},
	{"PHP", 0x08, 1, 3, Implied, false, (*CPU).php},
	{"PLP", 0x28, 1, 4, Implied, false, (*CPU).plp},

	// Flags
	{"CLC", 0x18, 1, 2, Implied, false, (*CPU).clc},
	{"SEC", 0x38, 1, 2, Implied, false, (*CPU).sec},
	{"CLI", 0x58, 1, 2, Implied, false, (*CPU).cli},
	{"SEI", 0x78, 1, 2, Implied, false, (*CPU).sei},
	{"CLV", 0xB8, 1, 2, Implied, false, (*CPU).clv},
	{"CLD", 0xD8, 1, 2, Implied, false, (*CPU).cld},
	{"SED", 0xF8, 1, 2, Implied, false, (*CPU).sed},

	// Control flow
	{"JMP", 0x4C, 3, 3, Absolute, false, (*CPU).jmp},
	{"JMP", 0x6C, 3, 5, Indirect, false, (*CPU).jmp},
	{"JSR", 0x20, 3, 6, Absolute, false, (*CPU).jsr},
	{"RTS", 0x60, 1, 6, Implied, false, (*CPU).rts},
	{"RTI", 0x40, 1, 6, Implied, false, (*CPU).rti},

	// Branches: cycle bonus for taken/page-crossed is computed by the
	// handler itself, so PageCrossPenalty stays false for all of these.
	{"BCC", 0x90, 2, 2, Relative, false, (*CPU).bcc},
	{"BCS", 0xB0, 2, 2, Relative, false, (*CPU).bcs},
	{"BNE", 0xD0, 2, 2, Relative, false, (*CPU).bne},
	{"BEQ", 0xF0, 2, 2, Relative, false, (*CPU).beq},
	{"BPL", 0x10, 2, 2, Relative, false, (*CPU).bpl},
	{"BMI", 0x30, 2, 2, Relative, false, (*CPU).bmi},
	{"BVC", 0x50, 2, 2, Relative, false, (*CPU).bvc},
	{"BVS", 0x70, 2, 2, Relative, false, (*CPU).bvs},

	// Miscellaneous
	{"BIT", 0x24, 2, 3, ZeroPage, false, (*CPU).bit},
	{"BIT", 0x2C, 3, 4, Absolute, false, (*CPU).bit},
	{"NOP", 0xEA, 1, 2, Implied, false, (*CPU).nop},
	{"BRK", 0x00, 1, 7, Implied, false, (*CPU).brk},

	// Unofficial NOPs
	{"NOP", 0x1A, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0x3A, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0x5A, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0x7A, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0xDA, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0xFA, 1, 2, Implied, false, (*CPU).nop},
	{"NOP", 0x80, 2, 2, Immediate, false, (*CPU).nop},
	{"NOP", 0x82, 2, 2, Immediate, false, (*CPU).nop},
	{"NOP", 0x89, 2, 2, Immediate, false, (*CPU).nop},
	{"NOP", 0xC2, 2, 2, Immediate, false, (*CPU).nop},
	{"NOP", 0xE2, 2, 2, Immediate, false, (*CPU).nop},
	{"NOP", 0x04, 2, 3, ZeroPage, false, (*CPU).nop},
	{"NOP", 0x44, 2, 3, ZeroPage, false, (*CPU).nop},
	{"NOP", 0x64, 2, 3, ZeroPage, false, (*CPU).nop},
	{"NOP", 0x14, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0x34, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0x54, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0x74, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0xD4, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0xF4, 2, 4, ZeroPageX, false, (*CPU).nop},
	{"NOP", 0x0C, 3, 4, Absolute, false, (*CPU).nop},
	{"NOP", 0x1C, 3, 4, AbsoluteX, true, (*CPU).nop},
	{"NOP", 0x3C, 3, 4, AbsoluteX, true, (*CPU).nop},
	{"NOP", 0x5C, 3, 4, AbsoluteX, true, (*CPU).nop},
	{"NOP", 0x7C, 3, 4, AbsoluteX, true, (*CPU).nop},
	{"NOP", 0xDC, 3, 4, AbsoluteX, true, (*CPU).nop},
	{"NOP", 0xFC, 3, 4, AbsoluteX, true, (*CPU).nop},

	// Unofficial opcodes
	{"LAX", 0xA7, 2, 3, ZeroPage, false, (*CPU).lax},
	{"LAX", 0xB7, 2, 4, ZeroPageY, false, (*CPU).lax},
	{"LAX", 0xAF, 3, 4, Absolute, false, (*CPU).lax},
	{"LAX", 0xBF, 3, 4, AbsoluteY, true, (*CPU).lax},
	{"LAX", 0xA3, 2, 6, IndexedIndirect, false, (*CPU).lax},
	{"LAX", 0xB3, 2, 5, IndirectIndexed, true, (*CPU).lax},

	{"SAX", 0x87, 2, 3, ZeroPage, false, (*CPU).sax},
	{"SAX", 0x97, 2, 4, ZeroPageY, false, (*CPU).sax},
	{"SAX", 0x8F, 3, 4, Absolute, false, (*CPU).sax},
	{"SAX", 0x83, 2, 6, IndexedIndirect, false, (*CPU).sax},

	{"DCP", 0xC7, 2, 5, ZeroPage, false, (*CPU).dcp},
	{"DCP", 0xD7, 2, 6, ZeroPageX, true, (*CPU).dcp},
	{"DCP", 0xCF, 3, 6, Absolute, false, (*CPU).dcp},
	{"DCP", 0xDF, 3, 7, AbsoluteX, true, (*CPU).dcp},
	{"DCP", 0xDB, 3, 7, AbsoluteY, false, (*CPU).dcp},
	{"DCP", 0xC3, 2, 8, IndexedIndirect, false, (*CPU).dcp},
	{"DCP", 0xD3, 2, 8, IndirectIndexed, true, (*CPU).dcp},

	{"ISB", 0xE7, 2, 5, ZeroPage, false, (*CPU).isb},
	{"ISB", 0xF7, 2, 6, ZeroPageX, true, (*CPU).isb},
	{"ISB", 0xEF, 3, 6, Absolute, false, (*CPU).isb},
	{"ISB", 0xFF, 3, 7, AbsoluteX, true, (*CPU).isb},
	{"ISB", 0xFB, 3, 7, AbsoluteY, false, (*CPU).isb},
	{"ISB", 0xE3, 2, 8, IndexedIndirect, false, (*CPU).isb},
	{"ISB", 0xF3, 2, 8, IndirectIndexed, true, (*CPU).isb},

	{"SLO", 0x07, 2, 5, ZeroPage, false, (*CPU).slo},
	{"SLO", 0x17, 2, 6, ZeroPageX, true, (*CPU).slo},
	{"SLO", 0x0F, 3, 6, Absolute, false, (*CPU).slo},
	{"SLO", 0x1F, 3, 7, AbsoluteX, true, (*CPU).slo},
	{"SLO", 0x1B, 3, 7, AbsoluteY, false, (*CPU).slo},
	{"SLO", 0x03, 2, 8, IndexedIndirect, false, (*CPU).slo},
	{"SLO", 0x13, 2, 8, IndirectIndexed, true, (*CPU).slo},

	{"RLA", 0x27, 2, 5, ZeroPage, false, (*CPU).rla},
	{"RLA", 0x37, 2, 6, ZeroPageX, true, (*CPU).rla},
	{"RLA", 0x2F, 3, 6, Absolute, false, (*CPU).rla},
	{"RLA", 0x3F, 3, 7, AbsoluteX, true, (*CPU).rla},
	{"RLA", 0x3B, 3, 7, AbsoluteY, false, (*CPU).rla},
	{"RLA", 0x23, 2, 8, IndexedIndirect, false, (*CPU).rla},
	{"RLA", 0x33, 2, 8, IndirectIndexed, true, (*CPU).rla},

	{"SRE", 0x47, 2, 5, ZeroPage, false, (*CPU).sre},
	{"SRE", 0x57, 2, 6, ZeroPageX, true, (*CPU).sre},
	{"SRE", 0x4F, 3, 6, Absolute, false, (*CPU).sre},
	{"SRE", 0x5F, 3, 7, AbsoluteX, true, (*CPU).sre},
	{"SRE", 0x5B, 3, 7, AbsoluteY, false, (*CPU).sre},
	{"SRE", 0x43, 2, 8, IndexedIndirect, false, (*CPU).sre},
	{"SRE", 0x53, 2, 8, IndirectIndexed, true, (*CPU).sre},

	{"RRA", 0x67, 2, 5, ZeroPage, false, (*CPU).rra},
	{"RRA", 0x77, 2, 6, ZeroPageX, true, (*CPU).rra},
	{"RRA", 0x6F, 3, 6, Absolute, false, (*CPU).rra},
	{"RRA", 0x7F, 3, 7, AbsoluteX, true, (*CPU).rra},
	{"RRA", 0x7B, 3, 7, AbsoluteY, false, (*CPU).rra},
	{"RRA", 0x63, 2, 8, IndexedIndirect, false, (*CPU).rra},
	{"RRA", 0x73, 2, 8, IndirectIndexed, true, (*CPU).rra},
}

// buildOpcodeTable expands opcodeTable into a 256-entry array indexed by
// opcode byte, copying each row so every CPU gets its own *Instruction
// pointers (cheap: 256 small allocations once per CPU, not per Step).
func buildOpcodeTable() [256]*Instruction {
	var table [256]*Instruction
	for i := range opcodeTable {
		row := opcodeTable[i]
		table[row.Opcode] = &row
	}
	return table
}
