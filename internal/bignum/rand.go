package bignum

import (
	"fmt"
	"io"
)

// maxDrawIterations bounds rejection sampling in RandomBelow. Each draw is
// accepted with probability above 1/2, so exhaustion means a broken source.
const maxDrawIterations = 255

// Top selects which high bits RandomBits forces to one.
type Top int

const (
	// TopAny leaves the high bits random.
	TopAny Top = iota
	// TopOne sets the most significant bit, so BitLen is exactly n.
	TopOne
	// TopTwo sets the two most significant bits, so the product of two such
	// n-bit values has exactly 2n bits.
	TopTwo
)

func (t Top) String() string {
	switch t {
	case TopAny:
		return "any"
	case TopOne:
		return "one"
	case TopTwo:
		return "two"
	default:
		return fmt.Sprintf("Top(%d)", int(t))
	}
}

// ParseTop maps "any", "one" or "two" to a Top.
func ParseTop(s string) (Top, error) {
	switch s {
	case "any":
		return TopAny, nil
	case "one":
		return TopOne, nil
	case "two":
		return TopTwo, nil
	default:
		return TopAny, fmt.Errorf("%w: unknown top mode %q", ErrInvalidArgument, s)
	}
}

// RandomBits returns a random value below 2^n read from rand, with the high
// bits forced according to top and the low bit forced when odd is set.
func RandomBits(rand io.Reader, n int, top Top, odd bool) (BigInt, error) {
	switch {
	case n <= 0:
		return BigInt{}, fmt.Errorf("%w: bit count %d", ErrInvalidArgument, n)
	case top < TopAny || top > TopTwo:
		return BigInt{}, fmt.Errorf("%w: %v", ErrInvalidArgument, top)
	case top == TopTwo && n < 2:
		return BigInt{}, fmt.Errorf("%w: TopTwo needs at least 2 bits", ErrInvalidArgument)
	case (n+limbBits-1)/limbBits > MaxLimbs:
		return BigInt{}, ErrMaxLimbs
	}

	buf := make([]byte, (n+7)/8)
	if err := readRandom(rand, buf); err != nil {
		return BigInt{}, err
	}
	// Drop the excess bits of the leading byte.
	if extra := len(buf)*8 - n; extra > 0 {
		buf[0] &= 0xFF >> uint(extra)
	}
	x := FromBytes(buf)
	var err error
	switch top {
	case TopOne:
		err = x.SetBit(n - 1)
	case TopTwo:
		if err = x.SetBit(n - 1); err == nil {
			err = x.SetBit(n - 2)
		}
	}
	if err == nil && odd {
		err = x.SetBit(0)
	}
	if err != nil {
		return BigInt{}, err
	}
	return x, nil
}

// RandomBelow returns a uniformly distributed value in [0, bound).
//
// Candidates of BitLen(bound) bits are drawn and rejected until one falls
// below bound.
func RandomBelow(rand io.Reader, bound BigInt) (BigInt, error) {
	if bound.Sign() <= 0 {
		return BigInt{}, fmt.Errorf("%w: bound must be positive", ErrInvalidArgument)
	}
	n := bound.BitLen()
	for range maxDrawIterations {
		x, err := RandomBits(rand, n, TopAny, false)
		if err != nil {
			return BigInt{}, err
		}
		if x.Cmp(bound) < 0 {
			return x, nil
		}
	}
	return BigInt{}, fmt.Errorf("%w: no value below bound after %d draws", ErrGenerationFailed, maxDrawIterations)
}

// RandomRange returns a uniformly distributed value in [lo, hi).
func RandomRange(rand io.Reader, lo, hi BigInt) (BigInt, error) {
	width, err := IntSub(hi, lo)
	if err != nil {
		return BigInt{}, err
	}
	x, err := RandomBelow(rand, width)
	if err != nil {
		return BigInt{}, err
	}
	return IntAdd(x, lo)
}

func readRandom(rand io.Reader, buf []byte) error {
	if _, err := io.ReadFull(rand, buf); err != nil {
		return fmt.Errorf("%w: reading randomness: %w", ErrGenerationFailed, err)
	}
	return nil
}
