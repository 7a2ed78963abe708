package bignum

// BitLen returns the number of bits in the magnitude (0 for zero).
func (i BigInt) BitLen() int {
	return bitLenLimbs(i.Limbs)
}

// TrailingZeros returns the number of trailing zero bits of the magnitude.
func (i BigInt) TrailingZeros() int {
	return trailingZerosLimbs(i.Limbs)
}

// Bit reports whether bit idx of the magnitude is set. Bits beyond the
// current length, and negative indices, read as unset.
func (i BigInt) Bit(idx int) bool {
	if idx < 0 {
		return false
	}
	return uintBitSet(trimLimbs(i.Limbs), idx)
}

// SetBit sets bit idx of the magnitude, growing it as needed.
func (i *BigInt) SetBit(idx int) error {
	if idx < 0 {
		return errNegativeIndex
	}
	word := idx / limbBits
	if word >= MaxLimbs {
		return ErrMaxLimbs
	}
	limbs := padLimbs(trimLimbs(i.Limbs), max(len(trimLimbs(i.Limbs)), word+1))
	limbs[word] |= 1 << (uint(idx) % limbBits)
	*i = makeInt(i.Neg, limbs)
	return nil
}

// ClearBit clears bit idx of the magnitude. Clearing the last set bit leaves
// canonical zero.
func (i *BigInt) ClearBit(idx int) error {
	if idx < 0 {
		return errNegativeIndex
	}
	if !i.Bit(idx) {
		return nil
	}
	limbs := cloneLimbs(i.Limbs)
	limbs[idx/limbBits] &^= 1 << (uint(idx) % limbBits)
	*i = makeInt(i.Neg, limbs)
	return nil
}

// Mask truncates the magnitude to its low n bits, i.e. |i| mod 2^n.
func (i *BigInt) Mask(n int) error {
	if n < 0 {
		return errNegativeIndex
	}
	*i = makeInt(i.Neg, uintLowBits(BigUint{Limbs: i.Limbs}, n).Limbs)
	return nil
}

// UintAnd returns the bitwise AND of a and b.
func UintAnd(a, b BigUint) BigUint {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	n := min(len(al), len(bl))
	if n == 0 {
		return BigUint{}
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = al[i] & bl[i]
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// UintOr returns the bitwise OR of a and b.
func UintOr(a, b BigUint) BigUint {
	return uintZip(a, b, func(x, y uint32) uint32 { return x | y })
}

// UintXor returns the bitwise XOR of a and b.
func UintXor(a, b BigUint) BigUint {
	return uintZip(a, b, func(x, y uint32) uint32 { return x ^ y })
}

func uintZip(a, b BigUint, op func(x, y uint32) uint32) BigUint {
	al := trimLimbs(a.Limbs)
	bl := trimLimbs(b.Limbs)
	n := max(len(al), len(bl))
	if n == 0 {
		return BigUint{}
	}
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		var av, bv uint32
		if i < len(al) {
			av = al[i]
		}
		if i < len(bl) {
			bv = bl[i]
		}
		out[i] = op(av, bv)
	}
	return BigUint{Limbs: trimLimbs(out)}
}

// IntAnd returns the bitwise AND of a and b using two's complement semantics.
func IntAnd(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintAnd)
}

// IntOr returns the bitwise OR of a and b using two's complement semantics.
func IntOr(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintOr)
}

// IntXor returns the bitwise XOR of a and b using two's complement semantics.
func IntXor(a, b BigInt) (BigInt, error) {
	return intBitOp(a, b, UintXor)
}

func intBitOp(a, b BigInt, op func(BigUint, BigUint) BigUint) (BigInt, error) {
	aa := a.Abs()
	bb := b.Abs()
	if aa.IsZero() && bb.IsZero() {
		return BigInt{}, nil
	}
	width := max(aa.BitLen(), bb.BitLen()) + 1
	pow2, err := UintShl(UintFromUint64(1), width)
	if err != nil {
		return BigInt{}, err
	}
	repA, err := twosComplement(aa, a.Neg, pow2)
	if err != nil {
		return BigInt{}, err
	}
	repB, err := twosComplement(bb, b.Neg, pow2)
	if err != nil {
		return BigInt{}, err
	}
	res := op(repA, repB)
	if !uintBitSet(res.Limbs, width-1) {
		return makeInt(false, res.Limbs), nil
	}
	mag, err := UintSub(pow2, res)
	if err != nil {
		return BigInt{}, err
	}
	return makeInt(true, mag.Limbs), nil
}

func twosComplement(mag BigUint, neg bool, pow2 BigUint) (BigUint, error) {
	if mag.IsZero() || !neg {
		return mag, nil
	}
	return UintSub(pow2, mag)
}

func uintBitSet(limbs []uint32, idx int) bool {
	word := idx / limbBits
	if word >= len(limbs) {
		return false
	}
	return limbs[word]>>(uint(idx)%limbBits)&1 == 1
}

func uintLowBits(u BigUint, bitsCount int) BigUint {
	if bitsCount <= 0 || u.IsZero() {
		return BigUint{}
	}
	limbs := trimLimbs(u.Limbs)
	wordCount := bitsCount / limbBits
	remBits := bitsCount % limbBits

	if wordCount >= len(limbs) {
		return BigUint{Limbs: cloneLimbs(limbs)}
	}
	outLen := wordCount
	if remBits != 0 {
		outLen++
	}
	out := make([]uint32, outLen)
	copy(out, limbs[:outLen])
	if remBits != 0 {
		mask := uint32(1<<remBits) - 1
		out[outLen-1] &= mask
	}
	return BigUint{Limbs: trimLimbs(out)}
}
