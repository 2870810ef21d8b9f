package lc3

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

// Program is an append-ordered instruction store. Indexes are assigned
// sequentially from zero.
type Program struct {
	Instructions []Instruction
}

// Append adds an instruction and returns the index it was assigned.
func (prog *Program) Append(inst Instruction) (index int) {
	index = len(prog.Instructions)
	prog.Instructions = append(prog.Instructions, inst)

	return
}

// At returns the instruction at an index. Any index outside the program,
// including the index one past the final instruction, is ErrIndexRange.
func (prog *Program) At(index int) (inst Instruction, err error) {
	if index < 0 || index >= len(prog.Instructions) {
		err = ErrIndexRange
		return
	}

	inst = prog.Instructions[index]
	return
}

// Len returns the number of stored instructions.
func (prog *Program) Len() int {
	return len(prog.Instructions)
}

// Clone returns a copy of the program.
func (prog *Program) Clone() *Program {
	return &Program{Instructions: slices.Clone(prog.Instructions)}
}

// Codes returns an iterator over (index, instruction) pairs in program order.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(index int, inst Instruction) bool) {
		for n, inst := range prog.Instructions {
			if !yield(n, inst) {
				return
			}
		}
	}
}

// Debug writes a program listing to the writer.
func (prog *Program) Debug(w io.Writer) {
	for n, inst := range prog.Instructions {
		fmt.Fprintf(w, "%04x: %v\n", n, inst)
	}
}
