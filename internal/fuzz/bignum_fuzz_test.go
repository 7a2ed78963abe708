package fuzztests

import (
	"errors"
	"math/big"
	"testing"

	"bignum/internal/bignum"
	"bignum/internal/testkit"
)

func toBig(x bignum.BigInt) *big.Int {
	b := new(big.Int).SetBytes(x.Bytes())
	if x.Sign() < 0 {
		b.Neg(b)
	}
	return b
}

func signed(mag []byte, neg bool) bignum.BigInt {
	x := bignum.FromBytes(clip(mag))
	if neg {
		x = x.Negated()
	}
	return x
}

func FuzzParseText(f *testing.F) {
	addTextSeeds(f)
	f.Fuzz(func(t *testing.T, s string, b uint8) {
		if len(s) > maxFuzzInput {
			s = s[:maxFuzzInput]
		}
		base := 2 + int(b)%35
		x, err := bignum.Parse(s, base)
		if err != nil {
			if !errors.Is(err, bignum.ErrParse) {
				t.Fatalf("Parse(%q, %d): unexpected error class %v", s, base, err)
			}
			return
		}
		if err := testkit.CheckCanonical(x); err != nil {
			t.Fatalf("Parse(%q, %d): %v", s, base, err)
		}
		back, err := bignum.Parse(x.Text(base), base)
		if err != nil || !back.Equal(x) {
			t.Fatalf("Text round trip of %q in base %d: %v", s, base, err)
		}
		if want, ok := new(big.Int).SetString(x.Text(base), base); !ok || want.Cmp(toBig(x)) != 0 {
			t.Fatalf("Text(%d) = %q disagrees with math/big", base, x.Text(base))
		}
	})
}

func FuzzDivMod(f *testing.F) {
	addOperandSeeds(f)
	f.Fuzz(func(t *testing.T, am, bm []byte, an, bn bool) {
		a, b := signed(am, an), signed(bm, bn)
		q, r, err := bignum.IntDivMod(a, b)
		if b.IsZero() {
			if !errors.Is(err, bignum.ErrDivByZero) {
				t.Fatalf("division by zero: err = %v", err)
			}
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckDivision(a, b, q, r); err != nil {
			t.Fatalf("%s divmod %s: %v", a, b, err)
		}
		wantQ, wantR := new(big.Int).QuoRem(toBig(a), toBig(b), new(big.Int))
		if toBig(q).Cmp(wantQ) != 0 || toBig(r).Cmp(wantR) != 0 {
			t.Fatalf("%s divmod %s = (%s, %s), want (%s, %s)", a, b, q, r, wantQ, wantR)
		}
	})
}

func FuzzModPow(f *testing.F) {
	addOperandSeeds(f)
	f.Fuzz(func(t *testing.T, bm, mm []byte, bn, _ bool) {
		if len(mm) > 128 {
			mm = mm[:128]
		}
		m := bignum.FromBytes(mm)
		if m.IsZero() {
			return
		}
		base := signed(bm, bn)
		e := bignum.FromBytes(mm[len(mm)/2:])
		got, err := bignum.ModPow(base, e, m)
		if err != nil {
			t.Fatal(err)
		}
		if err := testkit.CheckReduced(got, m); err != nil {
			t.Fatal(err)
		}
		bb := new(big.Int).Mod(toBig(base), toBig(m))
		want := new(big.Int).Exp(bb, toBig(e), toBig(m))
		if toBig(got).Cmp(want) != 0 {
			t.Fatalf("ModPow(%s, %s, %s) = %s, want %s", base, e, m, got, want)
		}
	})
}
