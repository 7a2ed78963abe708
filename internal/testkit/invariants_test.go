package testkit

import (
	"testing"

	"bignum/internal/bignum"
)

func TestCheckCanonical(t *testing.T) {
	good := []bignum.BigInt{{}, bignum.IntFromInt64(-5), {Limbs: []uint32{0, 1}}}
	for _, x := range good {
		if err := CheckCanonical(x); err != nil {
			t.Fatalf("CheckCanonical(%v): %v", x, err)
		}
	}
	bad := []bignum.BigInt{
		{Neg: true},
		{Limbs: []uint32{}},
		{Limbs: []uint32{1, 0}},
	}
	for _, x := range bad {
		if err := CheckCanonical(x); err == nil {
			t.Fatalf("CheckCanonical(%#v) accepted a non-canonical value", x)
		}
	}
}

func TestCheckDivision(t *testing.T) {
	a, b := bignum.IntFromInt64(-7), bignum.IntFromInt64(2)
	q, r, err := bignum.IntDivMod(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckDivision(a, b, q, r); err != nil {
		t.Fatal(err)
	}
	// Floor division is valid arithmetic but has the wrong remainder sign.
	if err := CheckDivision(a, b, bignum.IntFromInt64(-4), bignum.IntFromInt64(1)); err == nil {
		t.Fatal("floored result accepted")
	}
	if err := CheckDivision(a, b, bignum.IntFromInt64(-2), bignum.IntFromInt64(-3)); err == nil {
		t.Fatal("oversized remainder accepted")
	}
}

func TestCheckReduced(t *testing.T) {
	m := bignum.IntFromInt64(10)
	if err := CheckReduced(bignum.IntFromInt64(9), m); err != nil {
		t.Fatal(err)
	}
	for _, v := range []int64{10, -1} {
		if err := CheckReduced(bignum.IntFromInt64(v), m); err == nil {
			t.Fatalf("CheckReduced(%d) passed", v)
		}
	}
}
