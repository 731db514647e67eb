package cpu

import (
	"fmt"
	"strings"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_CP    = Op(0) // CP
	OP_LOAD  = Op(1) // LOAD
	OP_STORE = Op(2) // STORE
	OP_ADD   = Op(3) // ADD
	OP_MUL   = Op(4) // MUL
	OP_SUB   = Op(5) // SUB
	OP_READ  = Op(6) // READ
	OP_WRITE = Op(7) // WRITE
	OP_JUMP  = Op(8) // JUMP
)

// Cond is a JUMP condition.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_ZERO = Cond(0) // zero
	COND_POS  = Cond(1) // pos
	COND_NEG  = Cond(2) // neg
)

// Valid returns true for the defined conditions.
func (cond Cond) Valid() bool {
	return cond >= COND_ZERO && cond <= COND_NEG
}

// Evaluate returns true if value satisfies the condition.
// Undefined conditions are never satisfied.
func (cond Cond) Evaluate(value int64) bool {
	switch cond {
	case COND_ZERO:
		return value == 0
	case COND_POS:
		return value > 0
	case COND_NEG:
		return value < 0
	}

	return false
}

// Operand is a source argument, either a Literal or a Register.
type Operand interface {
	fmt.Stringer
	isOperand()
}

// Literal is an immediate integer operand.
type Literal int64

func (Literal) isOperand() {}

func (lit Literal) String() string {
	return fmt.Sprintf("%d", int64(lit))
}

// Register is a register file index operand. As a target it names the
// register slot that is written.
type Register int

func (Register) isOperand() {}

func (reg Register) String() string {
	return fmt.Sprintf("r%d", int(reg))
}

// Instruction is one decoded instruction. The set of implementations is
// closed: Cp, Load, Store, Add, Mul, Sub, Read, Write and Jump.
type Instruction interface {
	fmt.Stringer
	Op() Op
	isInstruction()
}

// Cp copies a value into a register.
type Cp struct {
	Src Operand
	Tgt Register
}

// Load copies a memory cell into a register.
type Load struct {
	Addr Operand
	Tgt  Register
}

// Store copies a value into a memory cell.
type Store struct {
	Src  Operand
	Addr Operand
}

// Add sums two values into a register.
type Add struct {
	Src1, Src2 Operand
	Tgt        Register
}

// Mul multiplies two values into a register.
type Mul struct {
	Src1, Src2 Operand
	Tgt        Register
}

// Sub subtracts Src2 from Src1 into a register.
type Sub struct {
	Src1, Src2 Operand
	Tgt        Register
}

// Read consumes the next input value into a register.
type Read struct {
	Tgt Register
}

// Write emits a value to the output.
type Write struct {
	Src Operand
}

// Jump sets ip to Addr when Cond holds for Src.
type Jump struct {
	Cond Cond
	Src  Operand
	Addr Operand
}

func (Cp) Op() Op    { return OP_CP }
func (Load) Op() Op  { return OP_LOAD }
func (Store) Op() Op { return OP_STORE }
func (Add) Op() Op   { return OP_ADD }
func (Mul) Op() Op   { return OP_MUL }
func (Sub) Op() Op   { return OP_SUB }
func (Read) Op() Op  { return OP_READ }
func (Write) Op() Op { return OP_WRITE }
func (Jump) Op() Op  { return OP_JUMP }

func (Cp) isInstruction()    {}
func (Load) isInstruction()  {}
func (Store) isInstruction() {}
func (Add) isInstruction()   {}
func (Mul) isInstruction()   {}
func (Sub) isInstruction()   {}
func (Read) isInstruction()  {}
func (Write) isInstruction() {}
func (Jump) isInstruction()  {}

// format renders an instruction in assembler syntax.
func format(op Op, args ...fmt.Stringer) string {
	words := make([]string, len(args))
	for n, arg := range args {
		if arg == nil {
			words[n] = "?"
			continue
		}
		words[n] = arg.String()
	}
	return op.String() + " " + strings.Join(words, ", ")
}

func (in Cp) String() string    { return format(in.Op(), in.Src, in.Tgt) }
func (in Load) String() string  { return format(in.Op(), in.Addr, in.Tgt) }
func (in Store) String() string { return format(in.Op(), in.Src, in.Addr) }
func (in Add) String() string   { return format(in.Op(), in.Src1, in.Src2, in.Tgt) }
func (in Mul) String() string   { return format(in.Op(), in.Src1, in.Src2, in.Tgt) }
func (in Sub) String() string   { return format(in.Op(), in.Src1, in.Src2, in.Tgt) }
func (in Read) String() string  { return format(in.Op(), in.Tgt) }
func (in Write) String() string { return format(in.Op(), in.Src) }
func (in Jump) String() string  { return format(in.Op(), in.Cond, in.Src, in.Addr) }
