// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/davidmaw/sLaCa3/internal"
	"github.com/davidmaw/sLaCa3/lc3"
)

const (
	INPUT_CELL  = int16(0x3100) // Memory cell read as program input.
	OUTPUT_CELL = int16(0x3101) // Memory cell written as program output.
)

var _emulator_defines = map[string]string{
	"INPUT_CELL":  fmt.Sprintf("%v", INPUT_CELL),
	"OUTPUT_CELL": fmt.Sprintf("%v", OUTPUT_CELL),
}

// Defines returns an iterator over the emulator's well-known cell equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_emulator_defines)
}

// Emulator assembles a source stream and runs it on a machine, mapping
// runtime errors back to source lines.
type Emulator struct {
	Verbose      bool // If set, enables verbose logging.
	*lc3.Machine      // The machine the object runs on.

	Object *lc3.Object // The assembled program, symbols, and listing.
}

// NewEmulator assembles a source stream into a new emulator. The well-known
// cell equates and any extra predefines are applied before parsing.
func NewEmulator(src io.Reader, predefines ...iter.Seq2[string, string]) (emu *Emulator, err error) {
	seqs := append([]iter.Seq2[string, string]{Defines()}, predefines...)

	asm := &lc3.Assembler{}
	for name, value := range internal.IterSeq2Concat(seqs...) {
		asm.Predefine(name, value)
	}

	obj, err := asm.Parse(src)
	if err != nil {
		return
	}

	emu = &Emulator{
		Machine: lc3.NewMachine(),
		Object:  obj,
	}

	return
}

// lineWrap ties a machine error to the source line of the instruction index
// it reports.
func (emu *Emulator) lineWrap(err error) error {
	var step *lc3.ErrStep
	if errors.As(err, &step) {
		err = &ErrRuntime{LineNo: emu.Object.LineOf(step.Index).No, Err: err}
	}

	return err
}

// LineNo returns the source line number of the next instruction.
func (emu *Emulator) LineNo() int {
	return emu.Object.LineOf(emu.Pc).No
}

// Step executes a single instruction of the object.
func (emu *Emulator) Step() (err error) {
	emu.Machine.Verbose = emu.Verbose

	err = emu.Machine.Step(emu.Object.Program, emu.Object.Symbols)
	if err != nil {
		err = emu.lineWrap(err)
	}

	return
}

// Run steps the object until the machine halts or an instruction fails.
// Memory staged beforehand is preserved; call Reset first for a cold start.
func (emu *Emulator) Run() (err error) {
	err = lc3.Verify(emu.Object.Program, emu.Object.Symbols)
	if err != nil {
		err = emu.lineWrap(err)
		return
	}

	for !emu.Halted {
		err = emu.Step()
		if err != nil {
			return
		}
	}

	return
}
