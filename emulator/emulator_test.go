package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davidmaw/sLaCa3/lc3"
)

// countZeros finds the longest run of zero bits in the input cell.
var countZeros = []string{
	"; count the longest run of zero bits",
	".fill input INPUT_CELL",
	".fill output OUTPUT_CELL",
	"  ldi r1, input",
	"  and r3, r3, #0  ; current run",
	"  and r4, r4, #0  ; best run",
	"  and r2, r2, #0",
	"  add r2, r2, #15",
	"  add r2, r2, #1  ; 16 bits to scan",
	"loop:",
	"  add r0, r1, #0  ; flag = word",
	"  brn one",
	"  add r3, r3, #1  ; extend the zero run",
	"  not r5, r3",
	"  add r5, r5, #1",
	"  add r5, r5, r4  ; best - run",
	"  brzp skip",
	"  add r4, r3, #0  ; new best",
	"  br skip",
	"one:",
	"  and r3, r3, #0",
	"skip:",
	"  add r1, r1, r1  ; next bit",
	"  add r2, r2, #-1",
	"  brp loop",
	"  sti r4, output",
	"  halt",
}

// countPattern counts '01' bit pairs, scanning from the most significant bit.
var countPattern = []string{
	"; count 01 bit pairs",
	".fill input INPUT_CELL",
	".fill output OUTPUT_CELL",
	"  ldi r1, input",
	"  and r4, r4, #0  ; pattern count",
	"  and r2, r2, #0",
	"  add r2, r2, #15",
	"  add r2, r2, #1  ; 16 bits to scan",
	"  and r5, r5, #0",
	"  add r5, r5, #1  ; previous bit, seeded one",
	"loop:",
	"  add r0, r1, #0  ; flag = word",
	"  brn one",
	"  and r5, r5, #0  ; previous = 0",
	"  br next",
	"one:",
	"  add r0, r5, #0  ; flag = previous bit",
	"  brp seen",
	"  add r4, r4, #1  ; 01 completed",
	"seen:",
	"  and r5, r5, #0",
	"  add r5, r5, #1  ; previous = 1",
	"next:",
	"  add r1, r1, r1  ; next bit",
	"  add r2, r2, #-1",
	"  brp loop",
	"  sti r4, output",
	"  halt",
}

// doRun assembles a program, stages the input cell, and runs it to halt,
// returning the output cell.
func doRun(t *testing.T, program []string, input int16) (output int16) {
	t.Helper()
	assert := assert.New(t)

	emu, err := NewEmulator(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	emu.SetMemory(INPUT_CELL, input)

	err = emu.Run()
	assert.NoError(err)
	assert.True(emu.Halted)

	output = emu.GetMemory(OUTPUT_CELL)
	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(strings.NewReader("halt"))
	assert.NoError(err)
	assert.False(emu.Verbose)
	assert.Equal(1, emu.Object.Program.Len())
	assert.NoError(emu.Run())
	assert.True(emu.Halted)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	defines := maps.Collect(Defines())
	assert.Equal("12544", defines["INPUT_CELL"])
	assert.Equal("12545", defines["OUTPUT_CELL"])
}

func TestEmulatorPredefines(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".fill cell MAGIC",
		"ldi r0, cell",
		"sti r0, cell",
		"halt",
	}

	extra := maps.All(map[string]string{"MAGIC": "256"})
	emu, err := NewEmulator(strings.NewReader(strings.Join(program, "\n")), extra)
	assert.NoError(err)

	emu.SetMemory(256, 42)
	assert.NoError(emu.Run())
	assert.Equal(int16(42), emu.Register[lc3.R0])
}

func TestEmulatorSyntaxError(t *testing.T) {
	assert := assert.New(t)

	_, err := NewEmulator(strings.NewReader("add r0\n"))
	assert.Error(err)

	var es *lc3.ErrSyntax
	if assert.True(errors.As(err, &es)) {
		assert.Equal(1, es.LineNo)
	}
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; comment",
		"add r0, r0, #1",
		"add r0, r0, #1",
		"halt",
	}

	emu, err := NewEmulator(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal(2, emu.LineNo())
	assert.NoError(emu.Step())
	assert.Equal(3, emu.LineNo())
	assert.NoError(emu.Step())
	assert.Equal(4, emu.LineNo())
	assert.NoError(emu.Step())
	assert.True(emu.Halted)
	assert.Equal(int16(2), emu.Register[lc3.R0])
}

// A program that never halts runs off the program store; the failure names
// the index, not a silent stop.
func TestEmulatorRunOffEnd(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(strings.NewReader("add r0, r0, #1\n"))
	assert.NoError(err)

	err = emu.Run()
	assert.ErrorIs(err, lc3.ErrIndexRange)
	assert.False(emu.Halted)

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(strings.NewReader("add r0, r0, #1\nhalt\n"))
	assert.NoError(err)
	assert.NoError(emu.Run())
	assert.True(emu.Halted)

	emu.Reset()
	assert.False(emu.Halted)
	assert.Equal(int16(0), emu.Register[lc3.R0])
	assert.NoError(emu.Run())
	assert.Equal(int16(1), emu.Register[lc3.R0])
}

func TestCountZeros(t *testing.T) {
	assert := assert.New(t)

	type testCase struct {
		input  int16
		expect int16
	}

	cases := []testCase{
		{0x424F, 4},
		{-1, 0},
		{0, 16},
	}

	for _, tc := range cases {
		assert.Equal(tc.expect, doRun(t, countZeros, tc.input), "input %04x", uint16(tc.input))
	}
}

func TestCountPattern(t *testing.T) {
	assert := assert.New(t)

	type testCase struct {
		input  int16
		expect int16
	}

	cases := []testCase{
		{0x424F, 4},
		{1, 1},
	}

	for _, tc := range cases {
		assert.Equal(tc.expect, doRun(t, countPattern, tc.input), "input %04x", uint16(tc.input))
	}
}
