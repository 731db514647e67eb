// Package io provides the integer I/O channels used by READ and WRITE.
// It includes a text stream channel (Tape) over an io.Reader and io.Writer,
// and a fixed capacity in-memory FIFO (Queue).
package io

// Input is a source of integers, consumed in order.
type Input interface {
	// Receive returns the next integer. It may block until one is
	// available, and returns ErrInputExhausted once the source is empty.
	Receive() (value int64, err error)
}

// Output is a sink of integers, appended in order.
type Output interface {
	// Send appends a value to the channel.
	Send(value int64) error
}

// Channel is a bidirectional integer channel.
type Channel interface {
	Input
	Output
	// Rewind resets the channel to its initial state.
	Rewind()
}
