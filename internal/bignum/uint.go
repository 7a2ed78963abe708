package bignum

// BigUint represents a big unsigned integer, the magnitude of a BigInt.
type BigUint struct {
	// Limbs are base-2^32 little-endian (Limbs[0] is least significant).
	//
	// Canonical zero is represented as nil/empty slice.
	Limbs []uint32
}

// UintZero returns a zero BigUint.
func UintZero() BigUint { return BigUint{} }

// UintFromUint64 creates a BigUint from a uint64.
func UintFromUint64(v uint64) BigUint {
	if v == 0 {
		return BigUint{}
	}
	lo := uint32(v)       //nolint:gosec // G115: truncation is intentional (low limb).
	hi := uint32(v >> 32) //nolint:gosec // G115: truncation is intentional (high limb).
	if hi == 0 {
		return BigUint{Limbs: []uint32{lo}}
	}
	return BigUint{Limbs: []uint32{lo, hi}}
}

// UintFromUint32 creates a BigUint from a uint32.
func UintFromUint32(v uint32) BigUint {
	if v == 0 {
		return BigUint{}
	}
	return BigUint{Limbs: []uint32{v}}
}

// IsZero reports whether the unsigned integer is zero.
func (u BigUint) IsZero() bool {
	return len(trimLimbs(u.Limbs)) == 0
}

// IsOdd reports whether the unsigned integer is odd.
func (u BigUint) IsOdd() bool {
	limbs := trimLimbs(u.Limbs)
	return len(limbs) > 0 && (limbs[0]&1) == 1
}

func (u BigUint) BitLen() int {
	return bitLenLimbs(u.Limbs)
}

// TrailingZeros returns the number of trailing zero bits.
func (u BigUint) TrailingZeros() int {
	return trailingZerosLimbs(u.Limbs)
}

// Cmp compares two BigUint values.
func (u BigUint) Cmp(v BigUint) int {
	return cmpLimbs(u.Limbs, v.Limbs)
}

// Uint64 converts BigUint to uint64 if possible.
func (u BigUint) Uint64() (uint64, bool) {
	limbs := trimLimbs(u.Limbs)
	switch len(limbs) {
	case 0:
		return 0, true
	case 1:
		return uint64(limbs[0]), true
	case 2:
		return uint64(limbs[0]) | (uint64(limbs[1]) << 32), true
	default:
		return 0, false
	}
}

// UintAdd adds two BigUint values and returns the result.
func UintAdd(a, b BigUint) (BigUint, error) {
	out, err := checkLimbs(addLimbs(trimLimbs(a.Limbs), trimLimbs(b.Limbs)))
	if err != nil {
		return BigUint{}, err
	}
	return BigUint{Limbs: out}, nil
}

// UintAddSmall adds a uint32 to a BigUint.
func UintAddSmall(u BigUint, v uint32) (BigUint, error) {
	return UintAdd(u, UintFromUint32(v))
}

// UintSub subtracts two BigUint values.
func UintSub(a, b BigUint) (BigUint, error) {
	if cmpLimbs(a.Limbs, b.Limbs) < 0 {
		return BigUint{}, ErrUnderflow
	}
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	if len(bl) == 0 {
		return BigUint{Limbs: cloneLimbs(al)}, nil
	}
	return BigUint{Limbs: subLimbs(al, bl)}, nil
}

// UintMul multiplies two BigUint values.
func UintMul(a, b BigUint) (BigUint, error) {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	if len(al) == 0 || len(bl) == 0 {
		return BigUint{}, nil
	}
	if len(al)+len(bl) > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	return BigUint{Limbs: mulLimbs(al, bl)}, nil
}

// UintMulSmall multiplies a BigUint by a uint32.
func UintMulSmall(u BigUint, m uint32) (BigUint, error) {
	if m == 0 || u.IsZero() {
		return BigUint{}, nil
	}
	limbs := trimLimbs(u.Limbs)
	if m == 1 {
		return BigUint{Limbs: cloneLimbs(limbs)}, nil
	}
	out := make([]uint32, len(limbs)+1)
	out[len(limbs)] = mulAddVWW(out[:len(limbs)], limbs, m, 0)
	res, err := checkLimbs(out)
	if err != nil {
		return BigUint{}, err
	}
	return BigUint{Limbs: res}, nil
}

// UintDivModSmall performs division with remainder on a BigUint by a uint32.
func UintDivModSmall(u BigUint, d uint32) (q BigUint, r uint32, err error) {
	if d == 0 {
		return BigUint{}, 0, ErrDivByZero
	}
	limbs := trimLimbs(u.Limbs)
	if len(limbs) == 0 {
		return BigUint{}, 0, nil
	}
	out := make([]uint32, len(limbs))
	r = divModSmall(out, limbs, d)
	return BigUint{Limbs: trimLimbs(out)}, r, nil
}

// UintShl performs a left bit shift on a BigUint.
func UintShl(u BigUint, bitsCount int) (BigUint, error) {
	if bitsCount < 0 {
		return BigUint{}, errNegativeShift
	}
	limbs := trimLimbs(u.Limbs)
	if len(limbs) == 0 {
		return BigUint{}, nil
	}
	if bitsCount/limbBits+len(limbs) > MaxLimbs {
		return BigUint{}, ErrMaxLimbs
	}
	if bitsCount == 0 {
		return BigUint{Limbs: cloneLimbs(limbs)}, nil
	}
	return BigUint{Limbs: shlLimbs(limbs, bitsCount)}, nil
}

// UintShr performs a right bit shift on a BigUint.
func UintShr(u BigUint, bitsCount int) (BigUint, error) {
	if bitsCount < 0 {
		return BigUint{}, errNegativeShift
	}
	if bitsCount == 0 {
		return BigUint{Limbs: cloneLimbs(u.Limbs)}, nil
	}
	return BigUint{Limbs: shrLimbs(u.Limbs, bitsCount)}, nil
}

// UintDivMod performs division with remainder on two BigUint values.
func UintDivMod(a, b BigUint) (q, r BigUint, err error) {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	if len(bl) == 0 {
		return BigUint{}, BigUint{}, ErrDivByZero
	}
	if cmpLimbs(al, bl) < 0 {
		return BigUint{}, BigUint{Limbs: cloneLimbs(al)}, nil
	}
	ql, rl := divLimbs(al, bl)
	return BigUint{Limbs: ql}, BigUint{Limbs: rl}, nil
}

// UintCmp compares two BigUint values and returns -1, 0, or 1.
func UintCmp(a, b BigUint) int { return a.Cmp(b) }
