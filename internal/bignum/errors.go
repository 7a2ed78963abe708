package bignum

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed numeric parameter: a negative
	// shift or bit index, a non-positive modulus or bound, a negative exponent.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDivByZero indicates an attempt to divide by zero.
	ErrDivByZero = errors.New("division by zero")
	// ErrParse indicates malformed decimal or hexadecimal text.
	ErrParse = errors.New("invalid numeric format")
	// ErrOverflow indicates a value does not fit the requested output type.
	ErrOverflow = errors.New("value out of range")
	// ErrGenerationFailed indicates a random search ran out of attempts.
	ErrGenerationFailed = errors.New("random generation failed")
	// ErrUnderflow indicates an unsigned subtraction went below zero.
	ErrUnderflow = errors.New("unsigned underflow")

	// ErrMaxLimbs indicates the numeric size limit was exceeded.
	ErrMaxLimbs = fmt.Errorf("%w: numeric size limit exceeded", ErrOverflow)

	errNegativeShift = fmt.Errorf("%w: negative shift", ErrInvalidArgument)
	errNegativeIndex = fmt.Errorf("%w: negative bit index", ErrInvalidArgument)
	errBadModulus    = fmt.Errorf("%w: modulus must be positive", ErrInvalidArgument)
)
