package bignum

import "fmt"

var errNegativeExponent = fmt.Errorf("%w: negative exponent", ErrInvalidArgument)

// modulusOf validates m and returns its magnitude.
func modulusOf(m BigInt) ([]uint32, error) {
	if m.Sign() <= 0 {
		return nil, errBadModulus
	}
	return trimLimbs(m.Limbs), nil
}

// reduce maps x into [0, m) for a positive, trimmed modulus m.
func reduce(x BigInt, m []uint32) BigInt {
	xl := trimLimbs(x.Limbs)
	if len(xl) == 0 {
		return BigInt{}
	}
	var r []uint32
	if cmpLimbs(xl, m) < 0 {
		r = cloneLimbs(xl)
	} else {
		_, r = divLimbs(xl, m)
	}
	if x.Neg && len(r) > 0 {
		r = subLimbs(m, r)
	}
	return makeInt(false, r)
}

// Mod returns x mod m in [0, m). Unlike IntMod the result is never negative.
func Mod(x, m BigInt) (BigInt, error) {
	ml, err := modulusOf(m)
	if err != nil {
		return BigInt{}, err
	}
	return reduce(x, ml), nil
}

// ModAdd returns (a + b) mod m.
func ModAdd(a, b, m BigInt) (BigInt, error) {
	ml, err := modulusOf(m)
	if err != nil {
		return BigInt{}, err
	}
	sum, err := IntAdd(a, b)
	if err != nil {
		return BigInt{}, err
	}
	return reduce(sum, ml), nil
}

// ModSub returns (a - b) mod m.
func ModSub(a, b, m BigInt) (BigInt, error) {
	ml, err := modulusOf(m)
	if err != nil {
		return BigInt{}, err
	}
	diff, err := IntSub(a, b)
	if err != nil {
		return BigInt{}, err
	}
	return reduce(diff, ml), nil
}

// ModMul returns (a * b) mod m.
func ModMul(a, b, m BigInt) (BigInt, error) {
	ml, err := modulusOf(m)
	if err != nil {
		return BigInt{}, err
	}
	prod, err := IntMul(reduce(a, ml), reduce(b, ml))
	if err != nil {
		return BigInt{}, err
	}
	return reduce(prod, ml), nil
}

// ModSqr returns a^2 mod m.
func ModSqr(a, m BigInt) (BigInt, error) {
	return ModMul(a, a, m)
}

// ModPow returns base^exp mod m.
//
// Every bit of every exponent limb is visited, the multiply is always
// performed, and the exponent bit only selects which product to keep.
// For odd moduli, which use Montgomery multiplication, the running time
// depends only on the limb counts of exp and m. Even moduli follow the same
// schedule but reduce with long division, whose timing depends on the
// operand values; they are not constant time.
func ModPow(base, exp, m BigInt) (BigInt, error) {
	ml, err := modulusOf(m)
	if err != nil {
		return BigInt{}, err
	}
	if exp.Sign() < 0 {
		return BigInt{}, errNegativeExponent
	}
	if len(ml) == 1 && ml[0] == 1 {
		return BigInt{}, nil
	}
	b := padLimbs(reduce(base, ml).Limbs, len(ml))
	e := trimLimbs(exp.Limbs)

	var out []uint32
	if ml[0]&1 == 1 {
		out = newMontgomery(ml).exp(b, e)
	} else {
		out = expPlain(b, e, ml)
	}
	return makeInt(false, out), nil
}

// expPlain is the fixed-schedule ladder for even moduli.
func expPlain(b, e, m []uint32) []uint32 {
	n := len(m)
	mulMod := func(x, y []uint32) []uint32 {
		_, r := divLimbs(mulLimbs(x, y), m)
		return padLimbs(r, n)
	}
	acc := padLimbs([]uint32{1}, n)
	t := make([]uint32, n)
	for i := len(e) - 1; i >= 0; i-- {
		limb := e[i]
		for k := limbBits - 1; k >= 0; k-- {
			acc = mulMod(acc, acc)
			prod := mulMod(acc, b)
			ctSelect(t, (limb>>uint(k))&1, prod, acc)
			acc, t = t, acc
		}
	}
	return acc
}
