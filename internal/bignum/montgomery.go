package bignum

// montgomery holds the precomputed values for multiplication modulo an odd m
// with R = 2^(32*len(m)).
type montgomery struct {
	m  []uint32
	k0 uint32   // -m^-1 mod 2^32
	rr []uint32 // R^2 mod m
}

func newMontgomery(m []uint32) *montgomery {
	n := len(m)
	one := make([]uint32, 2*n+1)
	one[2*n] = 1
	_, rr := divLimbs(trimLimbs(one), m)
	return &montgomery{
		m:  m,
		k0: montK0(m[0]),
		rr: padLimbs(rr, n),
	}
}

// montK0 returns -m0^-1 mod 2^32 for odd m0 by Newton iteration. Each step
// doubles the number of correct low bits; m0*m0 = 1 mod 8 gives the first 3.
func montK0(m0 uint32) uint32 {
	inv := m0
	for i := 0; i < 4; i++ {
		inv *= 2 - m0*inv
	}
	return -inv
}

// mul returns x*y*R^-1 mod m for x, y < m given as len(m) limbs (CIOS).
func (mt *montgomery) mul(x, y []uint32) []uint32 {
	m := mt.m
	n := len(m)
	t := make([]uint32, n+2)
	for i := 0; i < n; i++ {
		var c uint64
		xi := uint64(x[i])
		for j := 0; j < n; j++ {
			s := uint64(t[j]) + xi*uint64(y[j]) + c
			t[j] = uint32(s) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
			c = s >> limbBits
		}
		s := uint64(t[n]) + c
		t[n] = uint32(s)               //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		t[n+1] = uint32(s >> limbBits) //nolint:gosec // G115: carry is 0 or 1.

		q := uint64(t[0] * mt.k0)
		s = uint64(t[0]) + q*uint64(m[0])
		c = s >> limbBits
		for j := 1; j < n; j++ {
			s = uint64(t[j]) + q*uint64(m[j]) + c
			t[j-1] = uint32(s) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
			c = s >> limbBits
		}
		s = uint64(t[n]) + c
		t[n-1] = uint32(s)                  //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		t[n] = t[n+1] + uint32(s>>limbBits) //nolint:gosec // G115: carry is 0 or 1.
		t[n+1] = 0
	}

	// t < 2m; subtract m unconditionally and keep whichever is in range.
	d := make([]uint32, n)
	var borrow uint64
	for j := 0; j < n; j++ {
		s := uint64(t[j]) - uint64(m[j]) - borrow
		d[j] = uint32(s) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		borrow = (s >> 63) & 1
	}
	s := uint64(t[n]) - borrow
	underflow := uint32((s >> 63) & 1) //nolint:gosec // G115: single bit.
	out := make([]uint32, n)
	ctSelect(out, underflow, t[:n], d)
	return out
}

// exp computes b^e mod m for b < m padded to len(m) limbs.
func (mt *montgomery) exp(b, e []uint32) []uint32 {
	n := len(mt.m)
	bm := mt.mul(b, mt.rr)
	acc := mt.mul(padLimbs([]uint32{1}, n), mt.rr)
	t := make([]uint32, n)
	for i := len(e) - 1; i >= 0; i-- {
		limb := e[i]
		for k := limbBits - 1; k >= 0; k-- {
			acc = mt.mul(acc, acc)
			prod := mt.mul(acc, bm)
			ctSelect(t, (limb>>uint(k))&1, prod, acc)
			acc, t = t, acc
		}
	}
	return trimLimbs(mt.mul(acc, padLimbs([]uint32{1}, n)))
}

// ctSelect sets dst = x when v == 1 and dst = y when v == 0, without
// branching on v.
func ctSelect(dst []uint32, v uint32, x, y []uint32) {
	mask := -v
	for i := range dst {
		dst[i] = y[i] ^ (mask & (x[i] ^ y[i]))
	}
}
