package bignum

import "fmt"

// FromBytes interprets buf as an unsigned big-endian integer. Leading zero
// bytes are ignored; an empty buffer yields zero.
func FromBytes(buf []byte) BigInt {
	for len(buf) > 0 && buf[0] == 0 {
		buf = buf[1:]
	}
	if len(buf) == 0 {
		return BigInt{}
	}
	limbs := make([]uint32, (len(buf)+3)/4)
	for k := 0; k < len(buf); k++ {
		b := buf[len(buf)-1-k]
		limbs[k/4] |= uint32(b) << (8 * uint(k%4))
	}
	return makeInt(false, limbs)
}

// ByteLen returns the number of bytes needed for the magnitude of i.
func (i BigInt) ByteLen() int {
	return (i.BitLen() + 7) / 8
}

// Bytes returns the big-endian magnitude of i in exactly ByteLen bytes.
// Zero encodes as a single zero byte. The sign is not encoded.
func (i BigInt) Bytes() []byte {
	n := i.ByteLen()
	if n == 0 {
		return []byte{0}
	}
	out := make([]byte, n)
	putBytes(out, trimLimbs(i.Limbs))
	return out
}

// FillBytes writes the big-endian magnitude of i into buf, zero-padding on
// the left, and returns buf. It fails with ErrOverflow when the magnitude
// needs more than len(buf) bytes.
func (i BigInt) FillBytes(buf []byte) ([]byte, error) {
	if n := i.ByteLen(); n > len(buf) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrOverflow, n, len(buf))
	}
	clear(buf)
	putBytes(buf, trimLimbs(i.Limbs))
	return buf, nil
}

// putBytes writes limbs big-endian into the tail of buf; buf must be large
// enough for the significant bytes.
func putBytes(buf []byte, limbs []uint32) {
	k := len(buf) - 1
	for _, limb := range limbs {
		for s := 0; s < 4 && k >= 0; s++ {
			buf[k] = byte(limb >> (8 * uint(s))) //nolint:gosec // G115: truncation is intentional (byte extraction).
			k--
		}
	}
}
