// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package lc3

import (
	"fmt"
	"log"
)

// MEMORY_SIZE is the number of addressable memory cells.
const MEMORY_SIZE = 65536

// Machine is the full mutable state of the interpreter.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	Register [8]int16 // Register bank.
	Memory   []int16  // Addressable memory.
	Flag     int16    // Condition flag; only its sign is inspected.
	Pc       int      // Index of the next instruction.
	Halted   bool     // Set by TRAP_HALT.
	Steps    int      // Executed instruction counter.
}

// NewMachine creates a machine with zeroed registers and memory.
func NewMachine() (mach *Machine) {
	mach = &Machine{
		Memory: make([]int16, MEMORY_SIZE),
	}

	return
}

// Reset clears the machine state.
func (mach *Machine) Reset() {
	if mach.Verbose {
		log.Printf("machine: reset")
	}

	clear(mach.Register[:])
	clear(mach.Memory)
	mach.Flag = 0
	mach.Pc = 0
	mach.Halted = false
	mach.Steps = 0
}

// SetMemory writes a memory cell. The address is reinterpreted as unsigned,
// so any int16 address is legal.
func (mach *Machine) SetMemory(addr int16, value int16) {
	mach.Memory[uint16(addr)] = value
}

// GetMemory reads a memory cell.
func (mach *Machine) GetMemory(addr int16) int16 {
	return mach.Memory[uint16(addr)]
}

// flagSign renders the condition state of the flag.
func (mach *Machine) flagSign() byte {
	switch {
	case mach.Flag < 0:
		return 'n'
	case mach.Flag == 0:
		return 'z'
	default:
		return 'p'
	}
}

// String returns the current machine state as a string.
func (mach *Machine) String() (text string) {
	text = fmt.Sprintf("pc:%04x fl:%c", mach.Pc, mach.flagSign())
	for n, val := range mach.Register {
		text += fmt.Sprintf(" r%d:%04x", n, uint16(val))
	}
	if mach.Halted {
		text += " halted"
	}

	return
}

// setRegister writes a destination register and drives the flag from the
// value written.
func (mach *Machine) setRegister(reg Register, value int16) {
	mach.Register[reg] = value
	mach.Flag = value
}

// Step executes a single instruction. Stepping a halted machine is a no-op.
// All 16-bit arithmetic wraps two's-complement. Errors are reported with the
// index of the faulting instruction, and leave the Pc in place.
func (mach *Machine) Step(prog *Program, syms SymbolTable) (err error) {
	if mach.Halted {
		return
	}

	index := mach.Pc

	defer func() {
		if err != nil {
			err = &ErrStep{Index: index, Err: err}
		}
	}()

	inst, err := prog.At(index)
	if err != nil {
		return
	}

	err = inst.Validate()
	if err != nil {
		return
	}

	if mach.Verbose {
		log.Printf("%04x: %v", index, inst)
	}

	next := index + 1

	switch inst.Op {
	case OP_ADD_REG:
		mach.setRegister(inst.DR, mach.Register[inst.SR1]+mach.Register[inst.SR2])
	case OP_ADD_IMM:
		mach.setRegister(inst.DR, mach.Register[inst.SR1]+inst.Imm)
	case OP_AND_REG:
		mach.setRegister(inst.DR, mach.Register[inst.SR1]&mach.Register[inst.SR2])
	case OP_AND_IMM:
		mach.setRegister(inst.DR, mach.Register[inst.SR1]&inst.Imm)
	case OP_NOT:
		mach.setRegister(inst.DR, ^mach.Register[inst.SR1])
	case OP_BR:
		var target int16
		target, err = syms.Resolve(inst.Label)
		if err != nil {
			return
		}
		if inst.Cond.Matches(mach.Flag) {
			next = int(target)
		}
	case OP_LD:
		// Loads the binding value itself. A position label loads its
		// instruction index, a constant label its constant.
		var value int16
		value, err = syms.Resolve(inst.Label)
		if err != nil {
			return
		}
		mach.setRegister(inst.DR, value)
	case OP_LDI:
		var addr int16
		addr, err = syms.Resolve(inst.Label)
		if err != nil {
			return
		}
		mach.setRegister(inst.DR, mach.Memory[uint16(addr)])
	case OP_ST:
		// Overwrites the binding value. The label must already be bound.
		if !syms.Bound(inst.Label) {
			err = ErrLabelMissing(inst.Label)
			return
		}
		syms.BindConstant(inst.Label, mach.Register[inst.SR1])
	case OP_STI:
		var addr int16
		addr, err = syms.Resolve(inst.Label)
		if err != nil {
			return
		}
		mach.Memory[uint16(addr)] = mach.Register[inst.SR1]
	case OP_TRAP:
		mach.Halted = true
	default:
		err = ErrInstructionInvalid
		return
	}

	mach.Pc = next
	mach.Steps += 1

	return
}

// Verify checks that every label referenced by the program is bound in
// the symbol table. Execution must not begin until this passes.
func Verify(prog *Program, syms SymbolTable) (err error) {
	for index, inst := range prog.Codes() {
		label, ok := inst.Target()
		if !ok {
			continue
		}
		if !syms.Bound(label) {
			err = &ErrStep{Index: index, Err: ErrLabelMissing(label)}
			return
		}
	}

	return
}

// Run verifies the program against the symbol table, then steps the machine
// until it halts or fails. The machine state is not reset first; callers
// stage memory and registers before running.
func (mach *Machine) Run(prog *Program, syms SymbolTable) (err error) {
	err = Verify(prog, syms)
	if err != nil {
		return
	}

	for !mach.Halted {
		err = mach.Step(prog, syms)
		if err != nil {
			return
		}
	}

	return
}
