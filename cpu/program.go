package cpu

import (
	"iter"
	"strings"
)

// Opcode is one assembled source line.
type Opcode struct {
	LineNo      int
	Ip          int
	Words       []string
	Instruction Instruction
}

// Program is an assembled listing. Opcode n is the instruction at ip n.
type Program struct {
	Opcodes []Opcode
}

// Debug returns the listing entry for an ip, or nil if there is none.
func (prog *Program) Debug(ip int64) (dbg *Opcode) {
	if ip < 0 || ip >= int64(len(prog.Opcodes)) {
		return
	}

	dbg = &prog.Opcodes[ip]
	return
}

// Instructions returns the instruction stream executed by the Cpu.
func (prog *Program) Instructions() (insts []Instruction) {
	insts = make([]Instruction, 0, len(prog.Opcodes))
	for _, inst := range prog.Codes() {
		insts = append(insts, inst)
	}

	return
}

// Codes iterates over the instructions by ip.
func (prog *Program) Codes() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, inst Instruction) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Ip, op.Instruction) {
				return
			}
		}
	}
}

// String returns the canonical source text of the program.
func (prog *Program) String() string {
	var text strings.Builder
	for _, inst := range prog.Codes() {
		text.WriteString(inst.String())
		text.WriteString("\n")
	}

	return text.String()
}
