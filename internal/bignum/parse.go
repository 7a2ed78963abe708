package bignum

import (
	"fmt"
	"math"
)

const (
	minBase = 2
	maxBase = 36
)

var errBadBase = fmt.Errorf("%w: base must be in [2, 36]", ErrInvalidArgument)

// ParseDecimal parses an optionally signed decimal integer.
func ParseDecimal(s string) (BigInt, error) {
	return Parse(s, 10)
}

// ParseHex parses an optionally signed hexadecimal integer without a 0x
// prefix. Digits may be in either case.
func ParseHex(s string) (BigInt, error) {
	return Parse(s, 16)
}

// Parse parses s in the given base. The accepted form is one optional '+'
// or '-' followed by at least one digit; anything else fails with ErrParse.
// "-0" yields canonical zero.
func Parse(s string, base int) (BigInt, error) {
	if base < minBase || base > maxBase {
		return BigInt{}, errBadBase
	}
	if s == "" {
		return BigInt{}, fmt.Errorf("%w: empty input", ErrParse)
	}
	neg := false
	digits := s
	switch s[0] {
	case '+':
		digits = s[1:]
	case '-':
		neg = true
		digits = s[1:]
	}
	if digits == "" {
		return BigInt{}, fmt.Errorf("%w: %q has no digits", ErrParse, s)
	}
	u, err := parseMagnitude(digits, uint32(base)) //nolint:gosec // G115: base checked above.
	if err != nil {
		return BigInt{}, fmt.Errorf("%w: %q", err, s)
	}
	return makeInt(neg, u.Limbs), nil
}

// parseMagnitude accumulates digits in chunks: as many digits as fit in one
// limb are gathered with machine arithmetic, then folded into the result
// with a single multiply-add.
func parseMagnitude(s string, base uint32) (BigUint, error) {
	chunkDigits := chunkFor(base)
	var out []uint32
	for start := 0; start < len(s); start += chunkDigits {
		end := min(start+chunkDigits, len(s))
		var word, pow uint32 = 0, 1
		for i := start; i < end; i++ {
			d, ok := digitValue(s[i], base)
			if !ok {
				return BigUint{}, ErrParse
			}
			word = word*base + d
			pow *= base
		}
		out = mulAddLimbs(out, pow, word)
		if len(out) > MaxLimbs {
			return BigUint{}, ErrMaxLimbs
		}
	}
	return BigUint{Limbs: trimLimbs(out)}, nil
}

// chunkFor returns the largest n with base^n < 2^32.
func chunkFor(base uint32) int {
	n := 0
	pow := uint64(1)
	for pow*uint64(base) <= math.MaxUint32 {
		pow *= uint64(base)
		n++
	}
	return n
}

// mulAddLimbs returns x*y + r, reusing x's storage when it has room.
func mulAddLimbs(x []uint32, y, r uint32) []uint32 {
	if len(x) == 0 {
		if r == 0 {
			return nil
		}
		return []uint32{r}
	}
	carry := mulAddVWW(x, x, y, r)
	if carry != 0 {
		x = append(x, carry)
	}
	return x
}

func digitValue(ch byte, base uint32) (uint32, bool) {
	var d uint32
	switch {
	case ch >= '0' && ch <= '9':
		d = uint32(ch - '0')
	case ch >= 'a' && ch <= 'z':
		d = 10 + uint32(ch-'a')
	case ch >= 'A' && ch <= 'Z':
		d = 10 + uint32(ch-'A')
	default:
		return 0, false
	}
	return d, d < base
}
