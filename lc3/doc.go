// Package lc3 implements an interpreter for a small subset of the LC-3
// architecture.
//
// The machine has eight 16-bit registers, a 65536-cell memory, and a single
// condition flag driven by the sign of the last value written to a register.
// Programs are append-ordered sequences of validated Instruction values; the
// labels they reference are resolved against a SymbolTable when an instruction
// executes, so forward references are legal while a program is being built.
//
// The assembler provides an assembly language for the instruction set,
// supporting macros, labels, equates, and compile-time expression evaluation.
package lc3
