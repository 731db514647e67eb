package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterFile_Value(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}
	rf[3] = -17
	rf[REG_IP] = 4

	value, err := rf.Value(Literal(42))
	assert.NoError(err)
	assert.Equal(int64(42), value)

	value, err = rf.Value(Register(3))
	assert.NoError(err)
	assert.Equal(int64(-17), value)

	value, err = rf.Value(REG_IP)
	assert.NoError(err)
	assert.Equal(int64(4), value)

	_, err = rf.Value(Register(16))
	assert.ErrorIs(err, ErrRegisterOutOfRange)
	assert.ErrorIs(err, ErrRegister(16))

	_, err = rf.Value(nil)
	assert.ErrorIs(err, ErrOperandInvalid)
}

func TestRegisterFile_Target(t *testing.T) {
	assert := assert.New(t)

	rf := &RegisterFile{}

	slot, err := rf.Target(7)
	assert.NoError(err)
	*slot = 99

	expected := RegisterFile{}
	expected[7] = 99
	assert.Equal(expected, *rf)

	_, err = rf.Target(-1)
	assert.ErrorIs(err, ErrRegisterOutOfRange)

	_, err = rf.Target(REGISTER_COUNT)
	assert.ErrorIs(err, ErrRegisterOutOfRange)

	rf.Reset()
	assert.Equal(RegisterFile{}, *rf)
}
