package bignum

import (
	"math/big"
	"math/rand"
	mrand "math/rand/v2"
	"reflect"
	"testing"
)

func mustDec(t *testing.T, s string) BigInt {
	t.Helper()
	v, err := ParseDecimal(s)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return v
}

func mustHex(t *testing.T, s string) BigInt {
	t.Helper()
	v, err := ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", s, err)
	}
	return v
}

func toBig(x BigInt) *big.Int {
	b := new(big.Int).SetBytes(x.Bytes())
	if x.Neg {
		b.Neg(b)
	}
	return b
}

func fromBig(b *big.Int) BigInt {
	x := FromBytes(b.Bytes())
	if b.Sign() < 0 {
		return x.Negated()
	}
	return x
}

// seeded returns a deterministic byte stream for tests that draw randomness.
func seeded(seed uint64) *mrand.ChaCha8 {
	var key [32]byte
	for i := range 8 {
		key[i] = byte(seed >> (8 * i))
	}
	return mrand.NewChaCha8(key)
}

// qint is a testing/quick generator for signed values up to a few dozen
// limbs, with a bias towards small and boundary magnitudes.
type qint struct{ v BigInt }

func (qint) Generate(r *rand.Rand, size int) reflect.Value {
	var n int
	switch r.Intn(10) {
	case 0:
		n = 0
	case 1:
		n = 1 + r.Intn(90)
	default:
		n = 1 + r.Intn(max(size/10, 6))
	}
	limbs := make([]uint32, n)
	for i := range limbs {
		switch r.Intn(8) {
		case 0:
			limbs[i] = 0
		case 1:
			limbs[i] = ^uint32(0)
		default:
			limbs[i] = r.Uint32()
		}
	}
	return reflect.ValueOf(qint{makeInt(r.Intn(2) == 0, limbs)})
}

func (q qint) nonZero() BigInt {
	if q.v.IsZero() {
		return IntOne()
	}
	return q.v
}

func assertCanonical(t *testing.T, name string, x BigInt) {
	t.Helper()
	if len(x.Limbs) > 0 && x.Limbs[len(x.Limbs)-1] == 0 {
		t.Fatalf("%s has a trailing zero limb: %v", name, x.Limbs)
	}
	if len(x.Limbs) == 0 && x.Neg {
		t.Fatalf("%s is negative zero", name)
	}
}
