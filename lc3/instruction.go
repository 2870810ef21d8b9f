package lc3

import (
	"fmt"
)

// Instruction is a single decoded instruction. The Op selects which of the
// remaining fields are meaningful.
type Instruction struct {
	Op     Op
	DR     Register  // Destination register.
	SR1    Register  // First source register; the stored register for ST and STI.
	SR2    Register  // Second source register.
	Imm    int16     // Immediate operand.
	Cond   Condition // Branch condition.
	Label  string    // Symbol reference, resolved at execution time.
	Vector int       // Trap vector.
}

// MakeAddReg creates DR = SR1 + SR2.
func MakeAddReg(dr, sr1, sr2 Register) (inst Instruction, err error) {
	inst = Instruction{Op: OP_ADD_REG, DR: dr, SR1: sr1, SR2: sr2}
	err = inst.Validate()
	return
}

// MakeAddImm creates DR = SR1 + Imm.
func MakeAddImm(dr, sr1 Register, imm int16) (inst Instruction, err error) {
	inst = Instruction{Op: OP_ADD_IMM, DR: dr, SR1: sr1, Imm: imm}
	err = inst.Validate()
	return
}

// MakeAndReg creates DR = SR1 & SR2.
func MakeAndReg(dr, sr1, sr2 Register) (inst Instruction, err error) {
	inst = Instruction{Op: OP_AND_REG, DR: dr, SR1: sr1, SR2: sr2}
	err = inst.Validate()
	return
}

// MakeAndImm creates DR = SR1 & Imm.
func MakeAndImm(dr, sr1 Register, imm int16) (inst Instruction, err error) {
	inst = Instruction{Op: OP_AND_IMM, DR: dr, SR1: sr1, Imm: imm}
	err = inst.Validate()
	return
}

// MakeNot creates DR = ^SR1.
func MakeNot(dr, sr1 Register) (inst Instruction, err error) {
	inst = Instruction{Op: OP_NOT, DR: dr, SR1: sr1}
	err = inst.Validate()
	return
}

// MakeBranch creates a jump to a label, taken when the condition matches
// the flag.
func MakeBranch(cond Condition, label string) (inst Instruction, err error) {
	inst = Instruction{Op: OP_BR, Cond: cond, Label: label}
	err = inst.Validate()
	return
}

// MakeLoad creates DR = the symbol table binding of the label. The binding
// value itself is loaded, not memory.
func MakeLoad(dr Register, label string) (inst Instruction, err error) {
	inst = Instruction{Op: OP_LD, DR: dr, Label: label}
	err = inst.Validate()
	return
}

// MakeLoadIndirect creates DR = memory at the address bound to the label.
func MakeLoadIndirect(dr Register, label string) (inst Instruction, err error) {
	inst = Instruction{Op: OP_LDI, DR: dr, Label: label}
	err = inst.Validate()
	return
}

// MakeStore creates an overwrite of the label's symbol table binding with
// SR1. The label must already be bound when the instruction executes.
func MakeStore(sr1 Register, label string) (inst Instruction, err error) {
	inst = Instruction{Op: OP_ST, SR1: sr1, Label: label}
	err = inst.Validate()
	return
}

// MakeStoreIndirect creates a write of SR1 to memory at the address bound
// to the label.
func MakeStoreIndirect(sr1 Register, label string) (inst Instruction, err error) {
	inst = Instruction{Op: OP_STI, SR1: sr1, Label: label}
	err = inst.Validate()
	return
}

// MakeTrap creates a trap. Only TRAP_HALT is supported.
func MakeTrap(vector int) (inst Instruction, err error) {
	inst = Instruction{Op: OP_TRAP, Vector: vector}
	err = inst.Validate()
	return
}

// MakeHalt creates the halt instruction.
func MakeHalt() Instruction {
	inst, _ := MakeTrap(TRAP_HALT)
	return inst
}

// Validate checks the operand ranges of the instruction.
func (inst Instruction) Validate() (err error) {
	switch inst.Op {
	case OP_ADD_REG, OP_AND_REG:
		if !inst.DR.Valid() || !inst.SR1.Valid() || !inst.SR2.Valid() {
			err = ErrRegisterInvalid
			return
		}
	case OP_ADD_IMM, OP_AND_IMM:
		if !inst.DR.Valid() || !inst.SR1.Valid() {
			err = ErrRegisterInvalid
			return
		}
		if inst.Imm < IMM_MIN || inst.Imm > IMM_MAX {
			err = ErrImmediateRange
			return
		}
	case OP_NOT:
		if !inst.DR.Valid() || !inst.SR1.Valid() {
			err = ErrRegisterInvalid
			return
		}
	case OP_BR:
		if !inst.Cond.Valid() {
			err = ErrConditionInvalid
			return
		}
		if len(inst.Label) == 0 {
			err = ErrTargetMissing
			return
		}
	case OP_LD, OP_LDI:
		if !inst.DR.Valid() {
			err = ErrRegisterInvalid
			return
		}
		if len(inst.Label) == 0 {
			err = ErrTargetMissing
			return
		}
	case OP_ST, OP_STI:
		if !inst.SR1.Valid() {
			err = ErrRegisterInvalid
			return
		}
		if len(inst.Label) == 0 {
			err = ErrTargetMissing
			return
		}
	case OP_TRAP:
		if inst.Vector != TRAP_HALT {
			err = ErrTrapVector
			return
		}
	default:
		err = ErrInstructionInvalid
		return
	}

	return
}

// Target returns the label referenced by the instruction, if any.
func (inst Instruction) Target() (label string, ok bool) {
	switch inst.Op {
	case OP_BR, OP_LD, OP_LDI, OP_ST, OP_STI:
		label = inst.Label
		ok = len(label) != 0
	}

	return
}

// String returns the assembly language representation of this instruction.
func (inst Instruction) String() (out string) {
	switch inst.Op {
	case OP_ADD_REG, OP_AND_REG:
		out = fmt.Sprintf("%v %v, %v, %v", inst.Op, inst.DR, inst.SR1, inst.SR2)
	case OP_ADD_IMM, OP_AND_IMM:
		out = fmt.Sprintf("%v %v, %v, #%d", inst.Op, inst.DR, inst.SR1, inst.Imm)
	case OP_NOT:
		out = fmt.Sprintf("%v %v, %v", inst.Op, inst.DR, inst.SR1)
	case OP_BR:
		out = fmt.Sprintf("%v %v", inst.Cond, inst.Label)
	case OP_LD, OP_LDI:
		out = fmt.Sprintf("%v %v, %v", inst.Op, inst.DR, inst.Label)
	case OP_ST, OP_STI:
		out = fmt.Sprintf("%v %v, %v", inst.Op, inst.SR1, inst.Label)
	case OP_TRAP:
		out = fmt.Sprintf("%v x%02x", inst.Op, inst.Vector)
	default:
		out = inst.Op.String()
	}

	return
}
