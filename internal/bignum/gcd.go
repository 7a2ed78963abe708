package bignum

// GCD returns the greatest common divisor of |a| and |b|.
//
// GCD(0, 0) is 0 and GCD(a, 0) is |a|. The result is never negative.
func GCD(a, b BigInt) BigInt {
	u := cloneLimbs(a.Limbs)
	v := cloneLimbs(b.Limbs)
	if len(u) == 0 {
		return makeInt(false, v)
	}
	if len(v) == 0 {
		return makeInt(false, u)
	}

	// Binary GCD: factor out the common power of two, then repeatedly
	// subtract the smaller odd value from the larger.
	shift := min(trailingZerosLimbs(u), trailingZerosLimbs(v))
	u = shrLimbs(u, trailingZerosLimbs(u))
	for {
		v = shrLimbs(v, trailingZerosLimbs(v))
		if cmpLimbs(u, v) > 0 {
			u, v = v, u
		}
		v = subLimbs(v, u)
		if len(v) == 0 {
			break
		}
	}
	return makeInt(false, shlLimbs(u, shift))
}

// gcdEuclid is the remainder-sequence GCD, kept as a cross-check for GCD.
func gcdEuclid(a, b BigInt) BigInt {
	u := cloneLimbs(a.Limbs)
	v := cloneLimbs(b.Limbs)
	for len(v) > 0 {
		_, r := divLimbs(u, v)
		u, v = v, r
	}
	return makeInt(false, u)
}
