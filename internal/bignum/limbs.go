package bignum

import "math/bits"

// MaxLimbs is the maximum number of limbs allowed.
const MaxLimbs = 1_000_000

const limbBits = 32

func trimLimbs(limbs []uint32) []uint32 {
	for len(limbs) > 0 && limbs[len(limbs)-1] == 0 {
		limbs = limbs[:len(limbs)-1]
	}
	if len(limbs) == 0 {
		return nil
	}
	return limbs
}

func cloneLimbs(limbs []uint32) []uint32 {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return nil
	}
	out := make([]uint32, len(limbs))
	copy(out, limbs)
	return out
}

func checkLimbs(limbs []uint32) ([]uint32, error) {
	limbs = trimLimbs(limbs)
	if len(limbs) > MaxLimbs {
		return nil, ErrMaxLimbs
	}
	return limbs, nil
}

func bitLenLimbs(limbs []uint32) int {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return 0
	}
	ms := limbs[len(limbs)-1]
	return (len(limbs)-1)*limbBits + (limbBits - bits.LeadingZeros32(ms))
}

func cmpLimbs(a, b []uint32) int {
	a = trimLimbs(a)
	b = trimLimbs(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		av := a[i]
		bv := b[i]
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
	}
	return 0
}

// addLimbs returns a + b.
func addLimbs(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return nil
	}
	out := make([]uint32, len(a)+1)
	var carry uint64
	for i := range a {
		sum := uint64(a[i]) + carry
		if i < len(b) {
			sum += uint64(b[i])
		}
		out[i] = uint32(sum) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = sum >> limbBits
	}
	out[len(a)] = uint32(carry) //nolint:gosec // G115: carry is 0 or 1.
	return trimLimbs(out)
}

// subLimbs returns a - b. The caller guarantees a >= b.
func subLimbs(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	copy(out, a)
	subInPlace(out, b)
	return trimLimbs(out)
}

// subInPlace computes dst -= sub and returns the final borrow.
func subInPlace(dst, sub []uint32) uint32 {
	var borrow uint64
	for i := 0; i < len(dst); i++ {
		if i >= len(sub) && borrow == 0 {
			break
		}
		av := uint64(dst[i])
		bv := uint64(0)
		if i < len(sub) {
			bv = uint64(sub[i])
		}
		tmp := av - bv - borrow
		dst[i] = uint32(tmp) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		borrow = (tmp >> 63) & 1
	}
	return uint32(borrow) //nolint:gosec // G115: borrow is 0 or 1.
}

// addAt adds src into dst starting at limb offset off, propagating the carry.
// dst must be wide enough to hold the result.
func addAt(dst, src []uint32, off int) {
	var carry uint64
	i := 0
	for ; i < len(src); i++ {
		sum := uint64(dst[off+i]) + uint64(src[i]) + carry
		dst[off+i] = uint32(sum) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = sum >> limbBits
	}
	for k := off + i; carry != 0 && k < len(dst); k++ {
		sum := uint64(dst[k]) + carry
		dst[k] = uint32(sum) //nolint:gosec // G115: truncation is intentional (limb arithmetic).
		carry = sum >> limbBits
	}
}

func shlLimbs(limbs []uint32, n int) []uint32 {
	limbs = trimLimbs(limbs)
	if len(limbs) == 0 {
		return nil
	}
	wordShift := n / limbBits
	bitShift := uint(n % limbBits)
	out := make([]uint32, len(limbs)+wordShift+1)
	if bitShift == 0 {
		copy(out[wordShift:], limbs)
		return trimLimbs(out)
	}
	var carry uint32
	for i, v := range limbs {
		out[i+wordShift] = (v << bitShift) | carry
		carry = v >> (limbBits - bitShift)
	}
	out[len(limbs)+wordShift] = carry
	return trimLimbs(out)
}

func shrLimbs(limbs []uint32, n int) []uint32 {
	limbs = trimLimbs(limbs)
	wordShift := n / limbBits
	bitShift := uint(n % limbBits)
	if wordShift >= len(limbs) {
		return nil
	}
	out := make([]uint32, len(limbs)-wordShift)
	if bitShift == 0 {
		copy(out, limbs[wordShift:])
		return trimLimbs(out)
	}
	for i := range out {
		v := limbs[i+wordShift] >> bitShift
		if i+wordShift+1 < len(limbs) {
			v |= limbs[i+wordShift+1] << (limbBits - bitShift)
		}
		out[i] = v
	}
	return trimLimbs(out)
}

func trailingZerosLimbs(limbs []uint32) int {
	n := 0
	for _, limb := range trimLimbs(limbs) {
		if limb == 0 {
			n += limbBits
			continue
		}
		return n + bits.TrailingZeros32(limb)
	}
	return 0
}

// padLimbs returns limbs widened (or copied) to exactly n limbs.
func padLimbs(limbs []uint32, n int) []uint32 {
	out := make([]uint32, n)
	copy(out, limbs)
	return out
}
