package cpu

import (
	"errors"
)

const (
	REGISTER_COUNT = 16 // Number of registers in the register file.

	REG_SP = Register(14) // Stack pointer, by convention only.
	REG_IP = Register(15) // Instruction pointer.
)

// RegisterFile is the bank of general purpose registers.
type RegisterFile [REGISTER_COUNT]int64

// Value resolves a source operand to its integer value.
func (rf *RegisterFile) Value(src Operand) (value int64, err error) {
	switch src := src.(type) {
	case Literal:
		value = int64(src)
	case Register:
		var slot *int64
		slot, err = rf.Target(src)
		if err != nil {
			return
		}
		value = *slot
	default:
		err = ErrOperandInvalid
	}

	return
}

// Target resolves a target register to its settable slot.
func (rf *RegisterFile) Target(tgt Register) (slot *int64, err error) {
	if tgt < 0 || int(tgt) >= len(rf) {
		err = errors.Join(ErrRegisterOutOfRange, ErrRegister(tgt))
		return
	}

	slot = &rf[tgt]
	return
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
