package lc3

import (
	"errors"

	"github.com/davidmaw/sLaCa3/translate"
)

var f = translate.From

var (
	// Instruction construction errors
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrImmediateRange     = errors.New(f("immediate out of range"))
	ErrConditionInvalid   = errors.New(f("condition invalid"))
	ErrTrapVector         = errors.New(f("trap vector unsupported"))
	ErrTargetMissing      = errors.New(f("target missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))

	// Execution errors
	ErrIndexRange = errors.New(f("index out of range"))
	ErrSealed     = errors.New(f("builder sealed"))

	// Assembler errors
	ErrEquateSyntax          = errors.New(f(".equ syntax"))
	ErrEquateDuplicate       = errors.New(f(".equ duplicated"))
	ErrFillSyntax            = errors.New(f(".fill syntax"))
	ErrLabelDuplicate        = errors.New(f("label duplicated"))
	ErrMacroSyntax           = errors.New(f(".macro syntax"))
	ErrMacroNesting          = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate        = errors.New(f(".macro duplicated"))
	ErrMacroLonely           = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm       = errors.New(f(".endm without .macro"))
	ErrOpcodeMissing         = errors.New(f("opcode missing"))
	ErrOpcodeExtraArgs       = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing    = errors.New(f("value missing"))
	ErrAddressingUnsupported = errors.New(f("addressing mode unsupported"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrStep reports the program index where an execution error occurred.
type ErrStep struct {
	Index int
	Err   error
}

func (err ErrStep) Error() string {
	return f("index %d %v", err.Index, err.Err)
}

func (err ErrStep) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
