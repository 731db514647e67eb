package io

import (
	"errors"

	"github.com/ezrec/regvm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrChannelInvalid = errors.New(f("channel invalid"))
	ErrInputExhausted = errors.New(f("input exhausted"))
)

// ErrInputInvalid is an input token that is not an integer.
type ErrInputInvalid string

func (err ErrInputInvalid) Error() string {
	return f("input '%v' is not an integer", string(err))
}
