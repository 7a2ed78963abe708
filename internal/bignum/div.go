package bignum

import "math/bits"

const limbBase = uint64(1) << limbBits

// divModSmall computes q = x / d into q (len(q) >= len(x)) and returns x mod d.
func divModSmall(q, x []uint32, d uint32) uint32 {
	var rem uint64
	dd := uint64(d)
	for i := len(x) - 1; i >= 0; i-- {
		cur := (rem << limbBits) | uint64(x[i])
		q[i] = uint32(cur / dd) //nolint:gosec // G115: quotient fits in uint32.
		rem = cur % dd
	}
	return uint32(rem) //nolint:gosec // G115: remainder fits in uint32.
}

// divLimbs divides the trimmed magnitude u by the trimmed, non-zero v,
// returning trimmed quotient and remainder. Long divisors use Knuth's
// Algorithm D (TAOCP vol. 2, 4.3.1).
func divLimbs(u, v []uint32) (q, r []uint32) {
	if cmpLimbs(u, v) < 0 {
		return nil, cloneLimbs(u)
	}
	n := len(v)
	if n == 1 {
		q = make([]uint32, len(u))
		rem := divModSmall(q, u, v[0])
		return trimLimbs(q), trimLimbs([]uint32{rem})
	}
	m := len(u) - n

	// D1: normalize so the divisor's top limb has its high bit set.
	s := uint(bits.LeadingZeros32(v[n-1]))
	vn := make([]uint32, n)
	un := make([]uint32, len(u)+1)
	if s == 0 {
		copy(vn, v)
		copy(un, u)
	} else {
		for i := n - 1; i > 0; i-- {
			vn[i] = v[i]<<s | v[i-1]>>(limbBits-s)
		}
		vn[0] = v[0] << s
		un[len(u)] = u[len(u)-1] >> (limbBits - s)
		for i := len(u) - 1; i > 0; i-- {
			un[i] = u[i]<<s | u[i-1]>>(limbBits-s)
		}
		un[0] = u[0] << s
	}

	q = make([]uint32, m+1)
	vTop := uint64(vn[n-1])
	vNext := uint64(vn[n-2])
	for j := m; j >= 0; j-- {
		// D3: estimate q̂ from the top two limbs, then refine with the next.
		num := uint64(un[j+n])<<limbBits | uint64(un[j+n-1])
		qhat := num / vTop
		rhat := num % vTop
		for qhat >= limbBase || qhat*vNext > (rhat<<limbBits|uint64(un[j+n-2])) {
			qhat--
			rhat += vTop
			if rhat >= limbBase {
				break
			}
		}

		// D4: multiply and subtract.
		var borrow int64
		var t int64
		for i := 0; i < n; i++ {
			p := qhat * uint64(vn[i])
			t = int64(un[i+j]) - borrow - int64(p&0xFFFFFFFF) //nolint:gosec // G115: low half fits in int64.
			un[i+j] = uint32(t)                               //nolint:gosec // G115: truncation is intentional (limb arithmetic).
			borrow = int64(p>>limbBits) - (t >> limbBits)     //nolint:gosec // G115: high half fits in int64.
		}
		t = int64(un[j+n]) - borrow
		un[j+n] = uint32(t) //nolint:gosec // G115: truncation is intentional (limb arithmetic).

		// D5/D6: the estimate was one too large; add the divisor back.
		q[j] = uint32(qhat) //nolint:gosec // G115: qhat < 2^32 after refinement.
		if t < 0 {
			q[j]--
			var carry uint64
			for i := 0; i < n; i++ {
				sum := uint64(un[i+j]) + uint64(vn[i]) + carry
				un[i+j] = uint32(sum) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
				carry = sum >> limbBits
			}
			un[j+n] += uint32(carry) //nolint:gosec // G115: carry is 0 or 1.
		}
	}

	// D8: unnormalize the remainder.
	r = make([]uint32, n)
	if s == 0 {
		copy(r, un[:n])
	} else {
		for i := 0; i < n-1; i++ {
			r[i] = un[i]>>s | un[i+1]<<(limbBits-s)
		}
		r[n-1] = un[n-1]>>s | un[n]<<(limbBits-s)
	}
	return trimLimbs(q), trimLimbs(r)
}
