package cpu

import (
	"errors"
	"strconv"

	"github.com/ezrec/regvm/io"
	"github.com/ezrec/regvm/translate"
)

// Integers are passed to f pre-formatted, so the locale printer does not
// digit group them.
var f = translate.From

var (
	// Cpu errors
	ErrRegisterOutOfRange = errors.New(f("register out of range"))
	ErrMemoryOutOfBounds  = errors.New(f("memory out of bounds"))
	ErrInputExhausted     = io.ErrInputExhausted
	ErrStepAfterHalt      = errors.New(f("step after halt"))
	ErrChannelInvalid     = io.ErrChannelInvalid

	// Instruction decode errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroRecursion     = errors.New(f(".macro expands itself"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrCondInvalid        = errors.New(f("condition invalid"))
)

// ErrRegister is the index of a register that does not exist.
type ErrRegister Register

func (er ErrRegister) Error() string {
	return f("register %v", Register(er).String())
}

// ErrAddress is a memory address outside of the memory capacity.
type ErrAddress int64

func (ea ErrAddress) Error() string {
	return f("address %v", strconv.FormatInt(int64(ea), 10))
}

// ErrOpcode identifies the instruction that failed to execute.
type ErrOpcode struct {
	Ip          int64
	Instruction Instruction
}

func (eo ErrOpcode) Error() string {
	return f("ip %v '%v'", strconv.FormatInt(eo.Ip, 10), eo.Instruction)
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseValue string

func (err ErrParseValue) Error() string {
	return f("'%v' is not a value or register", string(err))
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
	return f("macro %v line %v %v", err.Macro, strconv.Itoa(err.Line), err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
