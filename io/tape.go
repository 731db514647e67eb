package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// Tape provides sequential integer I/O over byte streams.
// Input is whitespace separated signed decimal integers; output is one
// decimal integer per line.
type Tape struct {
	Input  io.Reader
	Output io.Writer

	scanner *bufio.Scanner
	source  io.Reader
}

var _ Channel = (*Tape)(nil)

// Rewind drops any buffered input. The underlying streams are not seekable.
func (tc *Tape) Rewind() {
	tc.scanner = nil
	tc.source = nil
}

// Receive reads the next integer from Input, blocking on the reader.
func (tc *Tape) Receive() (value int64, err error) {
	if tc.Input == nil {
		err = errors.Join(ErrChannelInvalid, ErrInputExhausted)
		return
	}

	if tc.scanner == nil || tc.source != tc.Input {
		tc.scanner = bufio.NewScanner(tc.Input)
		tc.scanner.Split(bufio.ScanWords)
		tc.source = tc.Input
	}

	if !tc.scanner.Scan() {
		err = tc.scanner.Err()
		if err == nil {
			err = ErrInputExhausted
		}
		return
	}

	word := tc.scanner.Text()
	value, err = strconv.ParseInt(word, 10, 64)
	if err != nil {
		err = ErrInputInvalid(word)
		return
	}

	return
}

// Send writes a value and a newline to Output.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		err = ErrChannelInvalid
		return
	}

	_, err = fmt.Fprintln(tc.Output, value)
	return
}
