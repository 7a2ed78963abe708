package bignum

// karatsubaThreshold is the operand length, in limbs, at which mulLimbs
// switches from the schoolbook method to Karatsuba.
var karatsubaThreshold = 40

// mulAddVWW computes z = x*y + r over len(x) limbs and returns the carry.
func mulAddVWW(z, x []uint32, y, r uint32) uint32 {
	carry := uint64(r)
	yy := uint64(y)
	for i := range x {
		t := uint64(x[i])*yy + carry
		z[i] = uint32(t) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = t >> limbBits
	}
	return uint32(carry) //nolint:gosec // G115: carry fits in one limb.
}

// addMulVVW computes z += x*y over len(x) limbs and returns the carry.
func addMulVVW(z, x []uint32, y uint32) uint32 {
	var carry uint64
	yy := uint64(y)
	for i := range x {
		t := uint64(z[i]) + uint64(x[i])*yy + carry
		z[i] = uint32(t) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = t >> limbBits
	}
	return uint32(carry) //nolint:gosec // G115: carry fits in one limb.
}

// mulSchool is the O(n*m) schoolbook product of two trimmed limb slices.
func mulSchool(a, b []uint32) []uint32 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]uint32, len(a)+len(b))
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		out[i+len(b)] = addMulVVW(out[i:i+len(b)], b, ai)
	}
	return trimLimbs(out)
}

// mulLimbs multiplies two trimmed limb slices.
func mulLimbs(a, b []uint32) []uint32 {
	a = trimLimbs(a)
	b = trimLimbs(b)
	if len(a) < karatsubaThreshold || len(b) < karatsubaThreshold {
		return mulSchool(a, b)
	}
	return karatsuba(a, b)
}

// karatsuba splits both operands at half the longer length:
//
//	a*b = z2*B^2h + ((a0+a1)(b0+b1) - z0 - z2)*B^h + z0
func karatsuba(a, b []uint32) []uint32 {
	half := max(len(a), len(b)) / 2
	a0, a1 := splitLimbs(a, half)
	b0, b1 := splitLimbs(b, half)

	z0 := mulLimbs(a0, b0)
	z2 := mulLimbs(a1, b1)
	z1 := mulLimbs(addLimbs(a0, a1), addLimbs(b0, b1))
	z1 = subLimbs(z1, z0)
	z1 = subLimbs(z1, z2)

	out := make([]uint32, len(a)+len(b)+1)
	addAt(out, z0, 0)
	addAt(out, z1, half)
	addAt(out, z2, 2*half)
	return trimLimbs(out)
}

func splitLimbs(x []uint32, at int) (lo, hi []uint32) {
	if len(x) <= at {
		return trimLimbs(x), nil
	}
	return trimLimbs(x[:at]), trimLimbs(x[at:])
}
