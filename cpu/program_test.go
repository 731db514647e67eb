package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testProgram() *Program {
	return &Program{
		Opcodes: []Opcode{
			{LineNo: 1, Ip: 0, Words: []string{"CP", "16", "r0"},
				Instruction: Cp{Src: Literal(16), Tgt: 0}},
			{LineNo: 3, Ip: 1, Words: []string{"CP", "32", "r1"},
				Instruction: Cp{Src: Literal(32), Tgt: 1}},
			{LineNo: 4, Ip: 2, Words: []string{"ADD", "r0", "r1", "r0"},
				Instruction: Add{Src1: Register(0), Src2: Register(1), Tgt: 0}},
		},
	}
}

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	dbg := prog.Debug(0)
	assert.NotNil(dbg)
	assert.Equal(1, dbg.LineNo)

	dbg = prog.Debug(1)
	assert.NotNil(dbg)
	assert.Equal(3, dbg.LineNo)

	dbg = prog.Debug(2)
	assert.NotNil(dbg)
	assert.Equal(4, dbg.LineNo)
	assert.Equal(OP_ADD, dbg.Instruction.Op())
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Nil(prog.Debug(3))
	assert.Nil(prog.Debug(-1))
	assert.Nil((&Program{}).Debug(0))
}

func TestProgram_Instructions(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	insts := prog.Instructions()
	assert.Equal([]Instruction{
		Cp{Src: Literal(16), Tgt: 0},
		Cp{Src: Literal(32), Tgt: 1},
		Add{Src1: Register(0), Src2: Register(1), Tgt: 0},
	}, insts)

	assert.Empty((&Program{}).Instructions())
}

func TestProgram_Codes_EarlyStop(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	var ips []int
	for ip := range prog.Codes() {
		ips = append(ips, ip)
		if ip == 1 {
			break
		}
	}

	assert.Equal([]int{0, 1}, ips)
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	prog := testProgram()

	assert.Equal("CP 16, r0\nCP 32, r1\nADD r0, r1, r0\n", prog.String())
}
