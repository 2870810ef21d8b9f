package lc3

// Immediate operand limits. Immediates occupy a 5-bit signed field.
const (
	IMM_MIN = int16(-16)
	IMM_MAX = int16(15)
)

// TRAP_HALT is the only supported trap vector.
const TRAP_HALT = 0x25

// Op is an instruction operation code.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADD_REG = Op(0)  // add
	OP_ADD_IMM = Op(1)  // add
	OP_AND_REG = Op(2)  // and
	OP_AND_IMM = Op(3)  // and
	OP_NOT     = Op(4)  // not
	OP_BR      = Op(5)  // br
	OP_LD      = Op(6)  // ld
	OP_LDI     = Op(7)  // ldi
	OP_ST      = Op(8)  // st
	OP_STI     = Op(9)  // sti
	OP_TRAP    = Op(10) // trap
)

// Register is a register file index.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	R0 = Register(0) // r0
	R1 = Register(1) // r1
	R2 = Register(2) // r2
	R3 = Register(3) // r3
	R4 = Register(4) // r4
	R5 = Register(5) // r5
	R6 = Register(6) // r6
	R7 = Register(7) // r7
)

// Valid returns true if the register is within the register file.
func (reg Register) Valid() bool {
	return reg >= R0 && reg <= R7
}

// Condition is a branch condition, a bitmask of the N, Z, and P flags.
// The zero value matches unconditionally.
type Condition int

//go:generate go tool stringer -linecomment -type=Condition
const (
	COND_ALWAYS = Condition(0) // br
	COND_P      = Condition(1) // brp
	COND_Z      = Condition(2) // brz
	COND_ZP     = Condition(3) // brzp
	COND_N      = Condition(4) // brn
	COND_NP     = Condition(5) // brnp
	COND_NZ     = Condition(6) // brnz
	COND_NZP    = Condition(7) // brnzp
)

// Valid returns true if the condition is one of the eight defined masks.
func (cond Condition) Valid() bool {
	return cond >= COND_ALWAYS && cond <= COND_NZP
}

// Matches returns true if the sign of the flag satisfies the condition.
func (cond Condition) Matches(flag int16) bool {
	if cond == COND_ALWAYS {
		return true
	}

	switch {
	case flag < 0:
		return (cond & COND_N) != 0
	case flag == 0:
		return (cond & COND_Z) != 0
	default:
		return (cond & COND_P) != 0
	}
}
