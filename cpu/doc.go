// Package cpu implements the register machine and its assembler.
//
// The machine has sixteen signed 64-bit registers (r0-r15), a linear data
// memory of signed 64-bit cells, and a read-only program of decoded
// instructions. Register r15 is the instruction pointer (ip) and r14 is
// by convention the stack pointer (sp); both are otherwise ordinary
// registers. Execution ends when ip addresses no instruction.
//
// Program and data memory are separate address spaces: JUMP targets are
// instruction indexes, LOAD and STORE addresses are memory cell indexes.
//
// The assembler reads a line oriented text format, one instruction per
// line, with '#' comments, .equ constants, .macro blocks, and $(...)
// compile-time expressions.
package cpu
