package io

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Receive(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader(" 5\n-12\t+3\n\n 0 ")}

	for _, expected := range []int64{5, -12, 3, 0} {
		value, err := tape.Receive()
		assert.NoError(err)
		assert.Equal(expected, value)
	}

	_, err := tape.Receive()
	assert.ErrorIs(err, ErrInputExhausted)
}

func TestTape_Receive_Invalid(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1 two 3")}

	value, err := tape.Receive()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	_, err = tape.Receive()
	assert.ErrorIs(err, ErrInputInvalid("two"))

	value, err = tape.Receive()
	assert.NoError(err)
	assert.Equal(int64(3), value)
}

type failReader struct{}

var errRead = errors.New("read failed")

func (failReader) Read(p []byte) (int, error) {
	return 0, errRead
}

func TestTape_Receive_Error(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: failReader{}}
	_, err := tape.Receive()
	assert.ErrorIs(err, errRead)

	tape = &Tape{}
	_, err = tape.Receive()
	assert.ErrorIs(err, ErrInputExhausted)
}

func TestTape_Receive_NewInput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: strings.NewReader("1 2")}
	value, err := tape.Receive()
	assert.NoError(err)
	assert.Equal(int64(1), value)

	// Replacing the reader drops the buffered input.
	tape.Input = strings.NewReader("9")
	value, err = tape.Receive()
	assert.NoError(err)
	assert.Equal(int64(9), value)

	tape.Rewind()
	_, err = tape.Receive()
	assert.ErrorIs(err, ErrInputExhausted)
}

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.NoError(tape.Send(120))
	assert.NoError(tape.Send(-1))
	assert.Equal("120\n-1\n", output.String())

	tape = &Tape{}
	err := tape.Send(1)
	assert.ErrorIs(err, ErrChannelInvalid)
	assert.NotErrorIs(err, ErrChannelFull)

	_, err = tape.Receive()
	assert.ErrorIs(err, ErrChannelInvalid)
	assert.ErrorIs(err, ErrInputExhausted)

	tape = &Tape{Output: io.Discard}
	assert.NoError(tape.Send(1))
}
