package bignum

import (
	"math"

	"fortio.org/safecast"
)

// BigInt represents a big signed integer.
//
// The zero value is the integer 0. Arithmetic never mutates its operands;
// only SetBit, ClearBit and Mask modify a value, and they copy the limbs
// before writing.
type BigInt struct {
	Neg bool
	// Limbs are base-2^32 little-endian magnitude (Limbs[0] is least significant).
	//
	// Canonical zero is represented as Neg=false and nil/empty Limbs.
	Limbs []uint32
}

// IntZero returns a zero BigInt.
func IntZero() BigInt { return BigInt{} }

// IntOne returns the BigInt 1.
func IntOne() BigInt { return BigInt{Limbs: []uint32{1}} }

// IntFromInt64 creates a BigInt from an int64.
func IntFromInt64(v int64) BigInt {
	if v == 0 {
		return BigInt{}
	}
	if v > 0 {
		return BigInt{Limbs: UintFromUint64(uint64(v)).Limbs}
	}
	// v < 0
	u := uint64(-(v + 1)) //nolint:gosec // G115: -(v+1) is non-negative and fits in uint64 here.
	u++
	return BigInt{Neg: true, Limbs: UintFromUint64(u).Limbs}
}

// IntFromUint64 creates a BigInt from a uint64.
func IntFromUint64(v uint64) BigInt {
	if v == 0 {
		return BigInt{}
	}
	return BigInt{Limbs: UintFromUint64(v).Limbs}
}

// IntFromInt creates a BigInt from a native int.
func IntFromInt(v int) BigInt {
	return IntFromInt64(int64(v))
}

// IntFromUint wraps a magnitude as a non-negative BigInt.
func IntFromUint(u BigUint) BigInt {
	return makeInt(false, cloneLimbs(u.Limbs))
}

// makeInt builds a canonical BigInt around limbs without copying them.
func makeInt(neg bool, limbs []uint32) BigInt {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return BigInt{}
	}
	return BigInt{Neg: neg, Limbs: limbs}
}

// IsZero reports whether the integer is zero.
func (i BigInt) IsZero() bool {
	return len(trimLimbs(i.Limbs)) == 0
}

// Sign returns -1, 0 or +1 for negative, zero and positive values.
func (i BigInt) Sign() int {
	switch {
	case i.IsZero():
		return 0
	case i.Neg:
		return -1
	default:
		return 1
	}
}

// IsOdd reports whether the magnitude is odd.
func (i BigInt) IsOdd() bool {
	return i.Abs().IsOdd()
}

// Abs returns the absolute value as a BigUint.
func (i BigInt) Abs() BigUint {
	return BigUint{Limbs: trimLimbs(i.Limbs)}
}

// AbsInt returns |i| as a BigInt.
func (i BigInt) AbsInt() BigInt {
	return makeInt(false, i.Limbs)
}

// Negated returns the negated value.
func (i BigInt) Negated() BigInt {
	if i.IsZero() {
		return BigInt{}
	}
	return BigInt{Neg: !i.Neg, Limbs: trimLimbs(i.Limbs)}
}

// Clone returns a copy of i that shares no storage with it.
func (i BigInt) Clone() BigInt {
	return makeInt(i.Neg, cloneLimbs(i.Limbs))
}

// Cmp compares two BigInt values.
func (i BigInt) Cmp(j BigInt) int {
	ia := trimLimbs(i.Limbs)
	ja := trimLimbs(j.Limbs)
	iNeg := i.Neg && len(ia) > 0
	jNeg := j.Neg && len(ja) > 0
	switch {
	case len(ia) == 0 && len(ja) == 0:
		return 0
	case iNeg != jNeg:
		if iNeg {
			return -1
		}
		return 1
	default:
		cmp := cmpLimbs(ia, ja)
		if iNeg {
			return -cmp
		}
		return cmp
	}
}

// Equal reports whether i == j.
func (i BigInt) Equal(j BigInt) bool { return i.Cmp(j) == 0 }

// Less reports whether i < j.
func (i BigInt) Less(j BigInt) bool { return i.Cmp(j) < 0 }

// Int64 converts BigInt to int64, failing with ErrOverflow when it does not fit.
func (i BigInt) Int64() (int64, error) {
	mag, ok := BigUint{Limbs: trimLimbs(i.Limbs)}.Uint64()
	if !ok {
		return 0, ErrOverflow
	}
	if !i.Neg {
		if mag > math.MaxInt64 {
			return 0, ErrOverflow
		}
		return int64(mag), nil
	}
	// Negative: allow magnitude up to 2^63.
	if mag > math.MaxInt64+1 {
		return 0, ErrOverflow
	}
	if mag == math.MaxInt64+1 {
		return math.MinInt64, nil
	}
	return -int64(mag), nil //nolint:gosec // G115: mag <= MaxInt64 here.
}

// Uint64 converts a non-negative BigInt to uint64.
func (i BigInt) Uint64() (uint64, error) {
	if i.Sign() < 0 {
		return 0, ErrOverflow
	}
	mag, ok := i.Abs().Uint64()
	if !ok {
		return 0, ErrOverflow
	}
	return mag, nil
}

// Int converts BigInt to the native int type.
func (i BigInt) Int() (int, error) {
	v, err := i.Int64()
	if err != nil {
		return 0, err
	}
	n, err := safecast.Conv[int](v)
	if err != nil {
		return 0, ErrOverflow
	}
	return n, nil
}

// IntAdd adds two BigInt values.
func IntAdd(a, b BigInt) (BigInt, error) {
	aa := BigUint{Limbs: trimLimbs(a.Limbs)}
	ba := BigUint{Limbs: trimLimbs(b.Limbs)}

	if a.Neg == b.Neg {
		sum, err := UintAdd(aa, ba)
		if err != nil {
			return BigInt{}, err
		}
		return makeInt(a.Neg, sum.Limbs), nil
	}

	cmp := UintCmp(aa, ba)
	switch {
	case cmp == 0:
		return BigInt{}, nil
	case cmp > 0:
		return makeInt(a.Neg, subLimbs(aa.Limbs, ba.Limbs)), nil
	default:
		return makeInt(b.Neg, subLimbs(ba.Limbs, aa.Limbs)), nil
	}
}

// IntSub subtracts two BigInt values.
func IntSub(a, b BigInt) (BigInt, error) {
	return IntAdd(a, b.Negated())
}

// IntMul multiplies two BigInt values.
func IntMul(a, b BigInt) (BigInt, error) {
	aa := BigUint{Limbs: trimLimbs(a.Limbs)}
	ba := BigUint{Limbs: trimLimbs(b.Limbs)}
	prod, err := UintMul(aa, ba)
	if err != nil {
		return BigInt{}, err
	}
	return makeInt(a.Neg != b.Neg, prod.Limbs), nil
}

// IntSqr returns a*a.
func IntSqr(a BigInt) (BigInt, error) {
	return IntMul(a, a)
}

// IntDivMod performs truncating division with remainder on two BigInt values.
//
// The quotient rounds toward zero and the remainder takes the sign of the
// dividend, so a == q*b + r and |r| < |b|.
func IntDivMod(a, b BigInt) (q, r BigInt, err error) {
	aa := BigUint{Limbs: trimLimbs(a.Limbs)}
	ba := BigUint{Limbs: trimLimbs(b.Limbs)}
	if ba.IsZero() {
		return BigInt{}, BigInt{}, ErrDivByZero
	}
	if aa.IsZero() {
		return BigInt{}, BigInt{}, nil
	}
	qMag, rMag, err := UintDivMod(aa, ba)
	if err != nil {
		return BigInt{}, BigInt{}, err
	}
	return makeInt(a.Neg != b.Neg, qMag.Limbs), makeInt(a.Neg, rMag.Limbs), nil
}

// IntDiv returns the truncated quotient a / b.
func IntDiv(a, b BigInt) (BigInt, error) {
	q, _, err := IntDivMod(a, b)
	return q, err
}

// IntMod returns the remainder of truncated division, signed like a.
//
// This is not the mathematical modulus: callers that need a residue in
// [0, |b|) must add |b| to a negative result, or use ModAdd and friends.
func IntMod(a, b BigInt) (BigInt, error) {
	_, r, err := IntDivMod(a, b)
	return r, err
}

// IntPow returns a**e.
func IntPow(a BigInt, e uint) (BigInt, error) {
	result := IntOne()
	base := a
	for e > 0 {
		if e&1 == 1 {
			var err error
			result, err = IntMul(result, base)
			if err != nil {
				return BigInt{}, err
			}
		}
		e >>= 1
		if e == 0 {
			break
		}
		var err error
		base, err = IntSqr(base)
		if err != nil {
			return BigInt{}, err
		}
	}
	return result, nil
}
