package lc3

// Builder accumulates a program and its symbol table instruction by
// instruction, then runs the result on its own machine. Labels may be
// referenced before they are bound; Run refuses to start while any
// referenced label is unbound.
//
// The first construction error sticks: later calls become no-ops and Run
// reports it. Emitter methods return the builder, so programs can be
// written as chains:
//
//	b := NewBuilder()
//	b.Label("loop").AddImm(R0, R0, -1).Branch(COND_P, "loop").Halt()
//	err := b.Run()
//
// Rebinding a label silently overwrites the previous binding.
type Builder struct {
	*Machine

	Program *Program
	Symbols SymbolTable

	sealed bool
	err    error
}

// NewBuilder creates an empty builder with a fresh machine.
func NewBuilder() (b *Builder) {
	b = &Builder{
		Machine: NewMachine(),
		Program: &Program{},
		Symbols: NewSymbolTable(),
	}

	return
}

// Err returns the first error recorded by the builder.
func (b *Builder) Err() error {
	return b.err
}

// Append validates an instruction and adds it to the program, returning the
// index it was (or would have been) assigned. Appending after Run has sealed
// the builder records ErrSealed.
func (b *Builder) Append(inst Instruction) (index int) {
	index = b.Program.Len()

	if b.err != nil {
		return
	}
	if b.sealed {
		b.err = ErrSealed
		return
	}
	if err := inst.Validate(); err != nil {
		b.err = err
		return
	}

	index = b.Program.Append(inst)
	return
}

// BindPosition binds a name to the index of the next instruction to be
// appended.
func (b *Builder) BindPosition(name string) {
	if b.err != nil {
		return
	}
	if b.sealed {
		b.err = ErrSealed
		return
	}

	b.Symbols.BindPosition(name, b.Program.Len())
}

// BindConstant binds a name to a constant value.
func (b *Builder) BindConstant(name string, value int16) {
	if b.err != nil {
		return
	}
	if b.sealed {
		b.err = ErrSealed
		return
	}

	b.Symbols.BindConstant(name, value)
}

// Run seals the builder and executes the program from the current machine
// state. Memory staged through SetMemory beforehand is still in place, and
// GetMemory stays legal afterwards for reading results back out.
func (b *Builder) Run() (err error) {
	if b.err != nil {
		err = b.err
		return
	}

	b.sealed = true

	err = b.Machine.Run(b.Program, b.Symbols)
	return
}

// emit records a constructed instruction, keeping the first error.
func (b *Builder) emit(inst Instruction, err error) *Builder {
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}

	b.Append(inst)
	return b
}

// AddReg appends DR = SR1 + SR2.
func (b *Builder) AddReg(dr, sr1, sr2 Register) *Builder {
	return b.emit(MakeAddReg(dr, sr1, sr2))
}

// AddImm appends DR = SR1 + imm.
func (b *Builder) AddImm(dr, sr1 Register, imm int16) *Builder {
	return b.emit(MakeAddImm(dr, sr1, imm))
}

// AndReg appends DR = SR1 & SR2.
func (b *Builder) AndReg(dr, sr1, sr2 Register) *Builder {
	return b.emit(MakeAndReg(dr, sr1, sr2))
}

// AndImm appends DR = SR1 & imm.
func (b *Builder) AndImm(dr, sr1 Register, imm int16) *Builder {
	return b.emit(MakeAndImm(dr, sr1, imm))
}

// Not appends DR = ^SR1.
func (b *Builder) Not(dr, sr1 Register) *Builder {
	return b.emit(MakeNot(dr, sr1))
}

// Branch appends a conditional jump to a label.
func (b *Builder) Branch(cond Condition, label string) *Builder {
	return b.emit(MakeBranch(cond, label))
}

// Load appends DR = the label's binding value.
func (b *Builder) Load(dr Register, label string) *Builder {
	return b.emit(MakeLoad(dr, label))
}

// LoadIndirect appends DR = memory at the label's bound address.
func (b *Builder) LoadIndirect(dr Register, label string) *Builder {
	return b.emit(MakeLoadIndirect(dr, label))
}

// Store appends an overwrite of the label's binding with SR1.
func (b *Builder) Store(sr1 Register, label string) *Builder {
	return b.emit(MakeStore(sr1, label))
}

// StoreIndirect appends a write of SR1 to memory at the label's bound
// address.
func (b *Builder) StoreIndirect(sr1 Register, label string) *Builder {
	return b.emit(MakeStoreIndirect(sr1, label))
}

// Trap appends a trap instruction.
func (b *Builder) Trap(vector int) *Builder {
	return b.emit(MakeTrap(vector))
}

// Halt appends the halt instruction.
func (b *Builder) Halt() *Builder {
	b.Append(MakeHalt())
	return b
}

// Label binds a name to the next instruction index.
func (b *Builder) Label(name string) *Builder {
	b.BindPosition(name)
	return b
}

// Constant binds a name to a constant value.
func (b *Builder) Constant(name string, value int16) *Builder {
	b.BindConstant(name, value)
	return b
}
