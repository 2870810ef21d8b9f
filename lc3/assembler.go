// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package lc3

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"IMM_MIN":     fmt.Sprintf("%v", IMM_MIN),
	"IMM_MAX":     fmt.Sprintf("%v", IMM_MAX),
	"TRAP_HALT":   fmt.Sprintf("%v", TRAP_HALT),
}

// Line is one entry of an Object listing, tying an instruction index back
// to the source text it was assembled from.
type Line struct {
	No   int    // Source line number.
	Text string // Source text, comment stripped.
}

// Object is the output of a successful assembly: the program, its symbol
// table, and a listing mapping instruction indexes to source lines.
type Object struct {
	Program *Program
	Symbols SymbolTable
	Listing []Line
}

// LineOf returns the source line of an instruction index. Indexes outside
// the listing return the zero Line.
func (obj *Object) LineOf(index int) (line Line) {
	if index >= 0 && index < len(obj.Listing) {
		line = obj.Listing[index]
	}

	return
}

// Assembler is a single pass macro assembler for the LC-3 subset.
//
// Mnemonics and register names are case-insensitive; label and equate names
// are not. Commas are interchangeable with whitespace. A trailing ';'
// comment is stripped from every line.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	predefine map[string]string   // Predefines
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	prog    *Program
	syms    SymbolTable
	listing []Line
}

// Predefine defines a new equate or redefines an existing equate, applied
// ahead of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// regMap is a map of register names to register indexes.
var regMap = map[string]Register{
	"r0": R0,
	"r1": R1,
	"r2": R2,
	"r3": R3,
	"r4": R4,
	"r5": R5,
	"r6": R6,
	"r7": R7,
}

// registerOf returns the register named by a word.
func (asm *Assembler) registerOf(word string) (reg Register, err error) {
	reg, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrParseRegister(word)
		return
	}

	return
}

// valueOf returns the value of a simple word. Accepted forms are '#'
// decimal, 'x' hexadecimal, 'b' binary, and anything strconv accepts in
// base 0. Values are parsed 17 bits wide, then wrapped to 16.
func (asm *Assembler) valueOf(word string) (value int16, err error) {
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}

	num := word
	switch {
	case num[0] == '#':
		num = num[1:]
	case (num[0] == 'x' || num[0] == 'X') && len(num) > 1:
		num = "0x" + num[1:]
	case (num[0] == 'b' || num[0] == 'B') && len(num) > 1 && (num[1] == '0' || num[1] == '1'):
		num = "0b" + num[1:]
	}

	v64, err := strconv.ParseInt(num, 0, 17)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int16(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 int16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be labels
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int16(st_int64)
	return
}

// parseLine parses a single line into its instruction, if any.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words := strings.Fields(strings.ReplaceAll(line, ",", " "))

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if asm.syms.Bound(label) {
			err = ErrLabelDuplicate
			return
		}

		asm.syms.BindPosition(label, asm.prog.Len())
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro expansion
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		for n, mline := range macro.Lines {
			mlineno := macro.LineNo + n

			mline = strings.ReplaceAll(mline, "@", fmt.Sprintf("%v_%v_", name, lineno))
			err = asm.parseLine(mline, mlineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: mlineno, Err: err}
				return
			}
		}

		return
	}

	err = asm.parseWords(words, lineno, line)
	return
}

// condSuffix returns the branch condition for a 'br' mnemonic suffix.
// An empty suffix is the unconditional branch.
func condSuffix(suffix string) (cond Condition, err error) {
	for _, c := range suffix {
		switch c {
		case 'n':
			cond |= COND_N
		case 'z':
			cond |= COND_Z
		case 'p':
			cond |= COND_P
		default:
			err = ErrInstructionInvalid
			return
		}
	}

	return
}

// parseWords evaluates the words of a line as an instruction or directive.
func (asm *Assembler) parseWords(words []string, lineno int, line string) (err error) {
	mnemonic := strings.ToLower(words[0])
	args := words[1:]

	// .fill NAME VALUE
	if mnemonic == ".fill" {
		if len(args) != 2 {
			err = ErrFillSyntax
			return
		}
		if asm.syms.Bound(args[0]) {
			err = ErrLabelDuplicate
			return
		}
		var value int16
		value, err = asm.valueOf(args[1])
		if err != nil {
			return
		}
		asm.syms.BindConstant(args[0], value)
		return
	}

	var inst Instruction

	switch mnemonic {
	case "add", "and":
		if len(args) < 3 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 3 {
			err = ErrOpcodeExtraArgs
			return
		}
		var dr, sr1 Register
		dr, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		sr1, err = asm.registerOf(args[1])
		if err != nil {
			return
		}
		sr2, is_reg := regMap[strings.ToLower(args[2])]
		if is_reg {
			if mnemonic == "add" {
				inst, err = MakeAddReg(dr, sr1, sr2)
			} else {
				inst, err = MakeAndReg(dr, sr1, sr2)
			}
		} else {
			var imm int16
			imm, err = asm.valueOf(args[2])
			if err != nil {
				return
			}
			if mnemonic == "add" {
				inst, err = MakeAddImm(dr, sr1, imm)
			} else {
				inst, err = MakeAndImm(dr, sr1, imm)
			}
		}
	case "not":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var dr, sr1 Register
		dr, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		sr1, err = asm.registerOf(args[1])
		if err != nil {
			return
		}
		inst, err = MakeNot(dr, sr1)
	case "ld", "ldi":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var dr Register
		dr, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		if mnemonic == "ld" {
			inst, err = MakeLoad(dr, args[1])
		} else {
			inst, err = MakeLoadIndirect(dr, args[1])
		}
	case "st", "sti":
		if len(args) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}
		var sr1 Register
		sr1, err = asm.registerOf(args[0])
		if err != nil {
			return
		}
		if mnemonic == "st" {
			inst, err = MakeStore(sr1, args[1])
		} else {
			inst, err = MakeStoreIndirect(sr1, args[1])
		}
	case "ldr", "str":
		// Base+offset addressing is not part of this subset.
		err = ErrAddressingUnsupported
		return
	case "trap":
		if len(args) < 1 {
			err = ErrOpcodeValueMissing
			return
		}
		if len(args) > 1 {
			err = ErrOpcodeExtraArgs
			return
		}
		var vector int16
		vector, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		inst, err = MakeTrap(int(vector))
	case "halt":
		if len(args) != 0 {
			err = ErrOpcodeExtraArgs
			return
		}
		inst = MakeHalt()
	default:
		if strings.HasPrefix(mnemonic, "br") {
			var cond Condition
			cond, err = condSuffix(mnemonic[2:])
			if err != nil {
				return
			}
			if len(args) < 1 {
				err = ErrOpcodeValueMissing
				return
			}
			if len(args) > 1 {
				err = ErrOpcodeExtraArgs
				return
			}
			inst, err = MakeBranch(cond, args[0])
			break
		}
		err = ErrInstructionInvalid
		return
	}
	if err != nil {
		return
	}

	asm.prog.Append(inst)
	asm.listing = append(asm.listing, Line{No: lineno, Text: line})

	return
}

// Parse assembles an input stream into an Object. Every label referenced by
// an instruction must be bound by end of input; the first miss is reported
// against the referencing source line.
func (asm *Assembler) Parse(input io.Reader) (obj *Object, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.prog = &Program{}
	asm.syms = NewSymbolTable()
	asm.listing = nil
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking: every referenced label must have been bound.
	for index, inst := range asm.prog.Codes() {
		label, ok := inst.Target()
		if !ok {
			continue
		}
		if !asm.syms.Bound(label) {
			at := asm.listing[index]
			lineno = at.No
			line = at.Text
			err = ErrLabelMissing(label)
			return
		}
	}

	obj = &Object{
		Program: asm.prog,
		Symbols: asm.syms,
		Listing: asm.listing,
	}

	return
}
